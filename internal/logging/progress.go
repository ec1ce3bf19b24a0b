package logging

// ProgressSampler limits progress logging to percentage buckets so that a
// non-interactive scan of many files emits a bounded number of lines.
type ProgressSampler struct {
	bucketSize float64
	lastBucket int
}

// NewProgressSampler constructs a sampler that emits when the percent crosses
// bucket boundaries (default 10%).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether progress at done of total should be logged. The
// first and final calls always log.
func (s *ProgressSampler) ShouldLog(done, total int) bool {
	if s == nil {
		return true
	}
	if total <= 0 {
		return done == 0 && s.advance(0)
	}
	percent := float64(done) / float64(total) * 100
	if done >= total {
		percent = 100
	}
	return s.advance(int(percent / s.bucketSize))
}

func (s *ProgressSampler) advance(bucket int) bool {
	if bucket <= s.lastBucket {
		return false
	}
	s.lastBucket = bucket
	return true
}

// Reset clears the sampler state.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastBucket = -1
}
