// Command cluso-triangles counts triangles and computes clustering
// coefficients of an undirected graph read from an edge list.
//
//	cluso-triangles analyze facebook_combined.txt.gz
//	cluso-triangles triangles --per-node -f json s3://graphs/snap/ca-GrQc.txt
//	cluso-triangles clustering --workers 8 edges.sz
//	cluso-triangles stats postgres://analyst@db/graphs --pg-query 'SELECT a, b FROM follows'
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-triangles/pkg/config"
	"github.com/dd0wney/cluso-triangles/pkg/edgelist"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitInvalidArgs = 2
)

// errUsage marks command-line mistakes.
var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps an error to the process exit status: 1 for unavailable
// input and other run failures, 2 for bad configuration or usage.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, edgelist.ErrInputUnavailable):
		return exitFailure
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, errUsage):
		return exitInvalidArgs
	default:
		return exitFailure
	}
}
