package form

// Action is the navigation request produced by a button press and
// interpreted by the Controller.
type Action int

const (
	// Stay keeps the current page.
	Stay Action = iota
	// Advance moves to the next page. It is a no-op on the last page.
	Advance
	// Retreat moves to the previous page. It is a no-op on the first page.
	Retreat
	// Submit hands the final values to the submit handler.
	Submit
)

func (a Action) String() string {
	switch a {
	case Advance:
		return "advance"
	case Retreat:
		return "retreat"
	case Submit:
		return "submit"
	default:
		return "stay"
	}
}
