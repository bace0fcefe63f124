package edgestore_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/followgraph/pkg/edgestore"
)

func ExampleStore_AddEdge() {
	dir, _ := os.MkdirTemp("", "edgestore")
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "community.csv")

	s, _ := edgestore.Open(path, edgestore.WithLogger(log.New(io.Discard)))
	defer s.Close()

	added, _ := s.AddEdge(1, 2, false)
	fmt.Println("added:", added)

	// Already known
	added, _ = s.AddEdge(1, 2, false)
	fmt.Println("added again:", added)

	// 3 is not a known node yet
	added, _ = s.AddEdge(3, 1, true)
	fmt.Println("restricted:", added)

	data, _ := os.ReadFile(path)
	fmt.Print(string(data))
	// Output:
	// added: true
	// added again: false
	// restricted: false
	// follower,followed
	// 1,2
}
