package retry

// sqrt5 is the square root of five, as calculated by 'math.Sqrt(5)' to the same precision as other 'math' defined
// constants.
const sqrt5 = 2.236067977499789805051477742381393909454345703125
