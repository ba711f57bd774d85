package chaumpedersen

// DefaultGroupBits is the minimum size of p to pass to GenerateGroup or StandardGroup absent other
// requirements.
const DefaultGroupBits = 2048

const primalityRounds = 40 // Miller-Rabin rounds when validating p and q

const expTableWidth = 7 // window width of the fixed-base tables for g and h

const randomStringAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
