package tasks

import "github.com/desertthunder/tidalfest/internal/models"

// Kind tags the lifecycle state.
type Kind int

const (
	Loading Kind = iota
	Success
	Failure
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return ""
	}
}

// State is a snapshot of the lifecycle.
//
// Only the fields for Kind are populated: MessageIndex and LoadingMessage while Loading,
// Result on Success, Message and Err on Failure.
type State struct {
	Kind       Kind
	FestivalID string
	Generation uint64

	MessageIndex   int
	LoadingMessage string

	Result *models.Result

	Message string
	Err     error
}
