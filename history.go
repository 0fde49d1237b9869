package ugit

import (
	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
)

// CommitIterator walks the history of one or more commits.
// Every commit is returned once, and first parents are walked before
// any other parent
type CommitIterator struct {
	r       *Repository
	queue   []ginternals.Oid
	visited map[ginternals.Oid]struct{}
	current *object.Commit
	err     error
}

// Ancestors returns an iterator on the given commits and all their
// ancestors. Null IDs are skipped
//
// Usage:
//
//	it := r.Ancestors(oid)
//	for it.Next() {
//		c := it.Commit()
//	}
//	if err := it.Err(); err != nil {}
func (r *Repository) Ancestors(seeds ...ginternals.Oid) *CommitIterator {
	return &CommitIterator{
		r:       r,
		queue:   append([]ginternals.Oid{}, seeds...),
		visited: map[ginternals.Oid]struct{}{},
	}
}

// Next moves to the next commit. It returns false when there are no
// commits left, or when an error occurred
func (it *CommitIterator) Next() bool {
	it.current = nil
	if it.err != nil {
		return false
	}
	for len(it.queue) > 0 {
		oid := it.queue[0]
		it.queue = it.queue[1:]
		if oid.IsZero() {
			continue
		}
		if _, ok := it.visited[oid]; ok {
			continue
		}
		it.visited[oid] = struct{}{}

		c, err := it.r.GetCommit(oid)
		if err != nil {
			it.err = err
			return false
		}
		parents := c.ParentIDs()
		if len(parents) > 0 {
			// the first parent is walked right away, the other ones
			// once everything else has been walked
			it.queue = append([]ginternals.Oid{parents[0]}, it.queue...)
			it.queue = append(it.queue, parents[1:]...)
		}
		it.current = c
		return true
	}
	return false
}

// Commit returns the current commit
func (it *CommitIterator) Commit() *object.Commit {
	return it.current
}

// Oid returns the ID of the current commit
func (it *CommitIterator) Oid() ginternals.Oid {
	if it.current == nil {
		return ginternals.NullOid
	}
	return it.current.ID()
}

// Err returns the error that stopped the iteration, if any
func (it *CommitIterator) Err() error {
	return it.err
}
