package constants

// MeasureLength is the number of rhythmic subunits in one measure.
const MeasureLength = 16

// TicksPerQuarter is the SMF metric resolution.
const TicksPerQuarter = 1024

// TicksPerUnit converts one rhythmic subunit (a 16th of a measure) to ticks.
const TicksPerUnit = TicksPerQuarter / 4

// DefaultOctave is where a chord sounds before any continuity adjustment.
const DefaultOctave = 5

const DefaultBPM = 180

const DefaultVelocity = 100

// Channel is the MIDI channel all notes are written to.
const Channel = 0

// DefaultAddr is the listen address of the serve command.
const DefaultAddr = ":8080"
