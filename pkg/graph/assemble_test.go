package graph

import (
	"reflect"
	"testing"
	"time"

	"github.com/atlascrm/relgraph/backend/pkg/common"
)

func testData() Data {
	now := time.Now()
	acct := func(id int64, pub, name, ticker string) common.Account {
		return common.Account{ID: id, PublicID: pub, Name: name, Ticker: ticker, CreatedAt: now, UpdatedAt: now}
	}
	person := func(id int64, pub, first, last, job string) common.Contact {
		return common.Contact{ID: id, PublicID: pub, FirstName: first, LastName: last, JobTitle: job, CreatedAt: now, UpdatedAt: now}
	}
	rel := func(id int64, pub string, src, tgt common.NodeRef, term common.Term, score *int, active bool) common.Relationship {
		spec := termSpecs[term]
		return common.Relationship{
			ID: id, PublicID: pub, Source: src, Target: tgt,
			Term: term, Kind: spec.Kind, Directed: spec.Directed,
			Score: score, Active: active, CreatedAt: now, UpdatedAt: now,
		}
	}
	accRef := func(id int64, pub string) common.NodeRef { return common.NodeRef{Type: common.NodeAccount, ID: id, PublicID: pub} }
	conRef := func(id int64, pub string) common.NodeRef { return common.NodeRef{Type: common.NodeContact, ID: id, PublicID: pub} }

	// acme -- competitor -- stark -- invested_in --> wayne
	// bob works_for acme; tony friend bob; carol colleague tony (deleted)
	return Data{
		Accounts: []common.Account{
			acct(1, "A1", "Acme Corp", "ACME"),
			acct(2, "A2", "Stark Ind", "STRK"),
			acct(3, "A3", "Wayne Ent", "WAYN"),
		},
		Contacts: []common.Contact{
			person(1, "C1", "Bob", "Builder", "Engineer"),
			person(2, "C2", "Tony", "Stark", "CEO"),
			person(3, "C3", "Carol", "Danvers", "Pilot"),
		},
		Relationships: []common.Relationship{
			rel(1, "R1", conRef(1, "C1"), accRef(1, "A1"), common.TermWorksFor, nil, true),
			rel(2, "R2", accRef(1, "A1"), accRef(2, "A2"), common.TermCompetitor, intp(-50), true),
			rel(3, "R3", accRef(2, "A2"), accRef(3, "A3"), common.TermInvestedIn, intp(50), true),
			rel(4, "R4", conRef(2, "C2"), conRef(1, "C1"), common.TermFriend, intp(80), true),
			rel(5, "R5", conRef(3, "C3"), conRef(2, "C2"), common.TermColleague, intp(20), false),
		},
	}
}

func nodeIDs(g common.Graph) []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

func edgeIDs(g common.Graph) []string {
	ids := make([]string, len(g.Edges))
	for i, e := range g.Edges {
		ids[i] = e.ID
	}
	return ids
}

func TestAssemble_SeededOneHop(t *testing.T) {
	g := Assemble(testData(), Options{Seeds: []string{"con-C1"}, Depth: 1})

	wantNodes := []string{"acc-A1", "con-C1", "con-C2"}
	if !reflect.DeepEqual(nodeIDs(g), wantNodes) {
		t.Fatalf("nodes = %v, want %v", nodeIDs(g), wantNodes)
	}
	wantEdges := []string{"rel-R1", "rel-R4"}
	if !reflect.DeepEqual(edgeIDs(g), wantEdges) {
		t.Fatalf("edges = %v, want %v", edgeIDs(g), wantEdges)
	}

	for _, e := range g.Edges {
		if e.ID == "rel-R1" {
			if e.Score != nil {
				t.Fatalf("works_for edge has score %d", *e.Score)
			}
			if !e.Directed || e.Kind != common.KindEmployment {
				t.Fatalf("works_for edge = %+v", e)
			}
		}
	}
}

func TestAssemble_DepthExpansion(t *testing.T) {
	// one hop from acme reaches stark; two reach wayne
	one := Assemble(testData(), Options{Query: "acme", Depth: 1})
	if got := nodeIDs(one); !reflect.DeepEqual(got, []string{"acc-A1", "acc-A2", "con-C1"}) {
		t.Fatalf("depth 1 nodes = %v", got)
	}

	two := Assemble(testData(), Options{Query: "acme", Depth: 2})
	if got := nodeIDs(two); !reflect.DeepEqual(got, []string{"acc-A1", "acc-A2", "acc-A3", "con-C1", "con-C2"}) {
		t.Fatalf("depth 2 nodes = %v", got)
	}
}

func TestAssemble_ExcludesDeletedByDefault(t *testing.T) {
	g := Assemble(testData(), Options{Query: "tony", Depth: 1})
	for _, e := range g.Edges {
		if e.ID == "rel-R5" {
			t.Fatalf("soft-deleted relationship included in default view")
		}
	}
	for _, n := range g.Nodes {
		if n.ID == "con-C3" {
			t.Fatalf("node reachable only through a deleted relationship was included")
		}
	}

	withDeleted := Assemble(testData(), Options{Query: "tony", Depth: 1, IncludeDeleted: true})
	found := false
	for _, e := range withDeleted.Edges {
		if e.ID == "rel-R5" {
			found = true
			if !e.Deleted {
				t.Fatalf("deleted edge not flagged: %+v", e)
			}
		}
	}
	if !found {
		t.Fatalf("include_deleted view omitted the soft-deleted relationship")
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	opts := Options{Query: "stark", Depth: 2}
	a := Assemble(testData(), opts)
	b := Assemble(testData(), opts)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical queries disagree:\n%+v\n%+v", a, b)
	}
}

func TestAssemble_EmptyResults(t *testing.T) {
	g := Assemble(testData(), Options{Query: "zzz-no-such-node"})
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Fatalf("no-match query returned %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	if g.Nodes == nil || g.Edges == nil {
		t.Fatalf("empty graph must serialize as [] not null")
	}
}

func TestAssemble_MostConnectedDefaultView(t *testing.T) {
	g := Assemble(testData(), Options{Limit: 2})
	// A1 and A2 both have degree 2 among active relationships; C1 ties with
	// A1/A2 but accounts sort first on the tie break.
	want := []string{"acc-A1", "acc-A2"}
	if !reflect.DeepEqual(nodeIDs(g), want) {
		t.Fatalf("most connected nodes = %v, want %v", nodeIDs(g), want)
	}
}

func TestAssemble_NodeLimit(t *testing.T) {
	g := Assemble(testData(), Options{Query: "stark", Depth: 3, Limit: 2})
	if len(g.Nodes) > 2 {
		t.Fatalf("limit ignored, got %d nodes", len(g.Nodes))
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"account by name", "acme", []string{"acc-A1"}},
		{"account by ticker", "WAYN", []string{"acc-A3"}},
		{"contact by full name", "tony stark", []string{"con-C2"}},
		{"contact by job title", "pilot", []string{"con-C3"}},
		{"case insensitive", "ACME", []string{"acc-A1"}},
		{"substring across both types", "stark", []string{"acc-A2", "con-C2"}},
		{"no match", "nobody", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nodes := Search(testData(), tc.query)
			ids := make([]string, 0, len(nodes))
			for _, n := range nodes {
				ids = append(ids, n.ID)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Fatalf("Search(%q) = %v, want %v", tc.query, ids, tc.want)
			}
		})
	}
}
