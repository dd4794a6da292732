package pdooci

import "iter"

// Iterator walks a FetchAll snapshot. It can be restarted any number of times; it never
// goes back to the native cursor.
type Iterator struct {
	result *Result
}

// Iterator drains the statement with FetchAll in the current fetch mode. ColumnGroup
// results have no row sequence; read them from FetchAll's Result.Groups instead.
func (s *Stmt) Iterator() (*Iterator, error) {
	if s.mode.Style == StyleColumnGroup {
		return nil, usageErr("iterator", "%v has no row sequence, use FetchAll", s.mode)
	}
	res, err := s.FetchAll()
	if err != nil {
		return nil, err
	}
	return &Iterator{result: res}, nil
}

// All yields (position, shaped row) pairs from the snapshot.
func (it *Iterator) All() iter.Seq2[int, interface{}] {
	return func(yield func(int, interface{}) bool) {
		for i, row := range it.result.Rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

func (it *Iterator) Len() int { return len(it.result.Rows) }

// Result is the snapshot behind the iterator.
func (it *Iterator) Result() *Result { return it.result }
