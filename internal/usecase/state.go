package usecase

// RunState tracks where a pipeline run is in its lifecycle. States advance
// strictly forward; Failed is terminal and reachable only from the stages
// whose prerequisite call is allowed to abort the run.
type RunState int

const (
	StateIdle RunState = iota
	StateCacheCheck
	StateReformulating
	StateSearching
	StateRetrieving
	StateSummarizing
	StateSynthesizing
	StateCaching
	StateDone
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCacheCheck:
		return "cache_check"
	case StateReformulating:
		return "reformulating"
	case StateSearching:
		return "searching"
	case StateRetrieving:
		return "retrieving"
	case StateSummarizing:
		return "summarizing"
	case StateSynthesizing:
		return "synthesizing"
	case StateCaching:
		return "caching"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
