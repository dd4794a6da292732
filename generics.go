package pdooci

// FetchAllInto drains s into new T values, T being a struct matched to columns the way
// Class mode does.
func FetchAllInto[T any](s *Stmt) ([]*T, error) {
	var zero T
	res, err := s.FetchAll(Class(zero))
	if err != nil {
		return nil, err
	}

	out := make([]*T, len(res.Rows))
	for i, v := range res.Rows {
		out[i] = v.(*T)
	}
	return out, nil
}
