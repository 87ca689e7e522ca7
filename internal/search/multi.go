package search

import "context"

// Result is the outcome of searching one source.
type Result struct {
	Source string  `json:"source"`
	Papers []Paper `json:"papers"`
	Error  string  `json:"error,omitempty"`
}

// Multi fans a query out across several sources.
type Multi struct {
	clients []Client
}

// NewMulti creates a Multi over the given clients, queried in order.
func NewMulti(clients ...Client) *Multi {
	return &Multi{clients: clients}
}

// DefaultClients returns the full set of source clients.
func DefaultClients() []Client {
	return []Client{
		NewS2Client(),
		NewArxivClient(),
		NewCrossRefClient(),
		NewOpenAlexClient(),
	}
}

// Clients returns the underlying source clients.
func (m *Multi) Clients() []Client {
	return m.clients
}

// Sources lists the source identifiers in query order.
func (m *Multi) Sources() []string {
	names := make([]string, 0, len(m.clients))
	for _, c := range m.clients {
		names = append(names, c.Source())
	}
	return names
}

// Search queries every source sequentially. A failing source contributes a
// Result carrying its error; it does not fail the whole search.
func (m *Multi) Search(ctx context.Context, query string, opts Options) []Result {
	results := make([]Result, 0, len(m.clients))
	for _, c := range m.clients {
		papers, err := c.Search(ctx, query, opts)
		r := Result{Source: c.Source(), Papers: papers}
		if err != nil {
			r.Error = err.Error()
			r.Papers = nil
		}
		results = append(results, r)
	}
	return results
}
