package encoder

// WordBits is the width of a machine word.
const WordBits = 12

// EncodingClassBits is the width of the encoding-class field that occupies
// the two least-significant bits of every instruction word.
const EncodingClassBits = 2

// DefaultAddress is the address the first instruction word is placed at
// when nothing overrides it.
const DefaultAddress = 100

// LargestPossibleNumber is the saturation ceiling for `.data` integer
// literals: any literal above this clamps down to it.
const LargestPossibleNumber = 2047
