package domain

type SearchState struct {
	Query     string
	Searching bool
}

type SearchCommand interface {
	searchCommand()
}

type (
	SetSearchQuery struct {
		Query string
	}

	ClearSearch struct{}
)

func (SetSearchQuery) searchCommand() {}
func (ClearSearch) searchCommand()    {}

func ReduceSearch(s SearchState, cmd SearchCommand) SearchState {
	switch c := cmd.(type) {
	case SetSearchQuery:
		return SearchState{Query: c.Query, Searching: len(c.Query) > 0}
	case ClearSearch:
		return SearchState{}
	default:
		return s
	}
}
