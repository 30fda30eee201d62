package graph

import (
	"sort"
	"strings"

	"github.com/atlascrm/relgraph/backend/pkg/common"
)

// Data is the store state the assembler works on. Accounts and contacts
// exclude soft-deleted entities; relationships include soft-deleted rows
// only when the caller asked for them.
type Data struct {
	Accounts      []common.Account
	Contacts      []common.Contact
	Relationships []common.Relationship
}

// Options controls subgraph assembly. Zero values fall back to the
// dashboard defaults.
type Options struct {
	Query          string
	Seeds          []string // node ids like "acc-<id>" / "con-<id>"
	Depth          int
	Limit          int
	IncludeDeleted bool
}

const (
	// DefaultDepth is the hop count around search matches.
	DefaultDepth = 2
	// DefaultLimit caps the node count of any assembled view.
	DefaultLimit = 100

	accountPrefix = "acc-"
	contactPrefix = "con-"
)

type nodeKey struct {
	Type common.NodeType
	ID   int64
}

// Assemble builds a renderable subgraph. With a query or explicit seeds
// it expands outward by Depth hops over traversable relationships; with
// neither it returns the most-connected nodes. Empty results are an
// empty graph, never an error.
func Assemble(data Data, opts Options) common.Graph {
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	var included map[nodeKey]bool
	seeds := seedSet(data, opts)
	if len(seeds) > 0 {
		included = expand(data.Relationships, seeds, opts)
	} else if strings.TrimSpace(opts.Query) != "" || len(opts.Seeds) > 0 {
		// a query/seed that matched nothing yields an empty graph
		included = map[nodeKey]bool{}
	} else {
		included = mostConnected(data.Relationships, opts)
	}

	return build(data, included, opts.IncludeDeleted)
}

// Search returns nodes whose name, ticker, or job title contains the
// query, case-insensitively. Used on its own for autocomplete and as
// the seed step of Assemble.
func Search(data Data, query string) []common.Node {
	refs := matchNodes(data, query)
	nodes := make([]common.Node, 0, len(refs))
	byKey := index(data)
	for key := range refs {
		if n, ok := byKey.node(key); ok {
			nodes = append(nodes, n)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

func seedSet(data Data, opts Options) map[nodeKey]bool {
	seeds := make(map[nodeKey]bool)
	if q := strings.TrimSpace(opts.Query); q != "" {
		for key := range matchNodes(data, q) {
			seeds[key] = true
		}
	}
	if len(opts.Seeds) > 0 {
		byKey := index(data)
		for _, id := range opts.Seeds {
			if key, ok := byKey.resolve(id); ok {
				seeds[key] = true
			}
		}
	}
	return seeds
}

func matchNodes(data Data, query string) map[nodeKey]bool {
	q := strings.ToLower(strings.TrimSpace(query))
	matches := make(map[nodeKey]bool)
	if q == "" {
		return matches
	}
	contains := func(s string) bool {
		return s != "" && strings.Contains(strings.ToLower(s), q)
	}
	for _, a := range data.Accounts {
		if contains(a.Name) || contains(a.Ticker) {
			matches[nodeKey{common.NodeAccount, a.ID}] = true
		}
	}
	for _, c := range data.Contacts {
		if contains(c.DisplayName()) || contains(c.JobTitle) {
			matches[nodeKey{common.NodeContact, c.ID}] = true
		}
	}
	return matches
}

// expand grows the seed set by BFS over traversable relationships,
// stopping after depth hops or once the node limit is reached.
func expand(rels []common.Relationship, seeds map[nodeKey]bool, opts Options) map[nodeKey]bool {
	adj := make(map[nodeKey][]nodeKey)
	for _, r := range rels {
		if !r.Active && !opts.IncludeDeleted {
			continue
		}
		src := nodeKey{r.Source.Type, r.Source.ID}
		tgt := nodeKey{r.Target.Type, r.Target.ID}
		adj[src] = append(adj[src], tgt)
		adj[tgt] = append(adj[tgt], src)
	}

	visited := make(map[nodeKey]bool, len(seeds))
	frontier := make([]nodeKey, 0, len(seeds))
	for key := range seeds {
		visited[key] = true
		frontier = append(frontier, key)
	}

	for hop := 0; hop < opts.Depth && len(visited) < opts.Limit; hop++ {
		var next []nodeKey
		for _, node := range frontier {
			for _, neighbor := range adj[node] {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	return trimToLimit(visited, opts.Limit)
}

// mostConnected returns the top nodes by relationship degree, the
// default view when nothing is searched or selected.
func mostConnected(rels []common.Relationship, opts Options) map[nodeKey]bool {
	degree := make(map[nodeKey]int)
	for _, r := range rels {
		if !r.Active && !opts.IncludeDeleted {
			continue
		}
		degree[nodeKey{r.Source.Type, r.Source.ID}]++
		degree[nodeKey{r.Target.Type, r.Target.ID}]++
	}

	keys := make([]nodeKey, 0, len(degree))
	for key := range degree {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if degree[keys[i]] != degree[keys[j]] {
			return degree[keys[i]] > degree[keys[j]]
		}
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].ID < keys[j].ID
	})
	if len(keys) > opts.Limit {
		keys = keys[:opts.Limit]
	}

	included := make(map[nodeKey]bool, len(keys))
	for _, key := range keys {
		included[key] = true
	}
	return included
}

// trimToLimit drops excess nodes deterministically, keeping the lowest
// keys so repeated queries agree.
func trimToLimit(set map[nodeKey]bool, limit int) map[nodeKey]bool {
	if len(set) <= limit {
		return set
	}
	keys := make([]nodeKey, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].ID < keys[j].ID
	})
	trimmed := make(map[nodeKey]bool, limit)
	for _, key := range keys[:limit] {
		trimmed[key] = true
	}
	return trimmed
}

func build(data Data, included map[nodeKey]bool, includeDeleted bool) common.Graph {
	byKey := index(data)

	nodes := make([]common.Node, 0, len(included))
	for key := range included {
		if n, ok := byKey.node(key); ok {
			nodes = append(nodes, n)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	edges := make([]common.Edge, 0)
	for _, r := range data.Relationships {
		if !r.Active && !includeDeleted {
			continue
		}
		src := nodeKey{r.Source.Type, r.Source.ID}
		tgt := nodeKey{r.Target.Type, r.Target.ID}
		if !included[src] || !included[tgt] {
			continue
		}
		edges = append(edges, common.Edge{
			ID:       "rel-" + r.PublicID,
			Source:   nodeID(r.Source.Type, r.Source.PublicID),
			Target:   nodeID(r.Target.Type, r.Target.PublicID),
			Term:     r.Term,
			Kind:     r.Kind,
			Directed: r.Directed,
			Score:    r.Score,
			Deleted:  !r.Active,
		})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	return common.Graph{Nodes: nodes, Edges: edges}
}

func nodeID(t common.NodeType, publicID string) string {
	if t == common.NodeAccount {
		return accountPrefix + publicID
	}
	return contactPrefix + publicID
}

// nodeIndex resolves node keys and public node ids against loaded data.
type nodeIndex struct {
	accounts map[int64]common.Account
	contacts map[int64]common.Contact
	byPublic map[string]nodeKey
}

func index(data Data) nodeIndex {
	idx := nodeIndex{
		accounts: make(map[int64]common.Account, len(data.Accounts)),
		contacts: make(map[int64]common.Contact, len(data.Contacts)),
		byPublic: make(map[string]nodeKey, len(data.Accounts)+len(data.Contacts)),
	}
	for _, a := range data.Accounts {
		idx.accounts[a.ID] = a
		idx.byPublic[accountPrefix+a.PublicID] = nodeKey{common.NodeAccount, a.ID}
	}
	for _, c := range data.Contacts {
		idx.contacts[c.ID] = c
		idx.byPublic[contactPrefix+c.PublicID] = nodeKey{common.NodeContact, c.ID}
	}
	return idx
}

func (idx nodeIndex) resolve(publicNodeID string) (nodeKey, bool) {
	key, ok := idx.byPublic[publicNodeID]
	return key, ok
}

func (idx nodeIndex) node(key nodeKey) (common.Node, bool) {
	switch key.Type {
	case common.NodeAccount:
		a, ok := idx.accounts[key.ID]
		if !ok {
			return common.Node{}, false
		}
		return common.Node{
			ID:     accountPrefix + a.PublicID,
			Type:   common.NodeAccount,
			Label:  a.Name,
			Ticker: a.Ticker,
		}, true
	case common.NodeContact:
		c, ok := idx.contacts[key.ID]
		if !ok {
			return common.Node{}, false
		}
		return common.Node{
			ID:    contactPrefix + c.PublicID,
			Type:  common.NodeContact,
			Label: c.DisplayName(),
			Job:   c.JobTitle,
		}, true
	}
	return common.Node{}, false
}
