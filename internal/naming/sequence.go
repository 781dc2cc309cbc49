package naming

// SessionCounter assigns session sequence numbers within a single aggregation
// pass. It is owned by the pass that created it and must be discarded
// afterwards: numbering is recomputed from a fresh ascending-date fetch on
// every run, so a counter reused across runs would drift from the store.
type SessionCounter struct {
	counts map[sessionKey]int
}

type sessionKey struct {
	patient string
	date    string
}

// NewSessionCounter returns an empty counter.
func NewSessionCounter() *SessionCounter {
	return &SessionCounter{counts: make(map[sessionKey]int)}
}

// Next assigns the next session number for the (patient, date) pair. For N
// calls with the same key it returns exactly 1..N in call order.
func (c *SessionCounter) Next(patientKey, date string) int {
	k := sessionKey{patient: patientKey, date: date}
	c.counts[k]++
	return c.counts[k]
}
