package dbg

// Statistics counts what an Emitter has written
type Statistics struct {
	// EmitCount is the number of debug calls that produced output
	EmitCount int
	// ValueCount is the number of values formatted across all calls
	ValueCount int
	// ByteCount is the number of bytes handed to the sink
	ByteCount int
}

func (s *Statistics) Clear() {
	s.EmitCount = 0
	s.ValueCount = 0
	s.ByteCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.EmitCount += other.EmitCount
	s.ValueCount += other.ValueCount
	s.ByteCount += other.ByteCount
}
