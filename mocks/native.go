package mocks

import "github.com/pdooci/pdooci"
import "github.com/stretchr/testify/mock"

import (
	"context"
)

type Connector struct {
	mock.Mock
}

func (_m *Connector) Connect(ctx context.Context, params pdooci.ConnectParams) (pdooci.NativeConn, error) {
	ret := _m.Called(ctx, params)

	var r0 pdooci.NativeConn
	if rf, ok := ret.Get(0).(func(context.Context, pdooci.ConnectParams) pdooci.NativeConn); ok {
		r0 = rf(ctx, params)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(pdooci.NativeConn)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, pdooci.ConnectParams) error); ok {
		r1 = rf(ctx, params)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type NativeConn struct {
	mock.Mock
}

func (_m *NativeConn) Parse(ctx context.Context, query string) (pdooci.NativeStmt, error) {
	ret := _m.Called(ctx, query)

	var r0 pdooci.NativeStmt
	if rf, ok := ret.Get(0).(func(context.Context, string) pdooci.NativeStmt); ok {
		r0 = rf(ctx, query)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(pdooci.NativeStmt)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, query)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
func (_m *NativeConn) Commit(ctx context.Context) error {
	ret := _m.Called(ctx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
func (_m *NativeConn) Rollback(ctx context.Context) error {
	ret := _m.Called(ctx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
func (_m *NativeConn) Close() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

type NativeStmt struct {
	mock.Mock
}

func (_m *NativeStmt) BindByName(name string, value interface{}, kind pdooci.ParamKind) bool {
	ret := _m.Called(name, value, kind)

	var r0 bool
	if rf, ok := ret.Get(0).(func(string, interface{}, pdooci.ParamKind) bool); ok {
		r0 = rf(name, value, kind)
	} else {
		r0 = ret.Bool(0)
	}

	return r0
}
func (_m *NativeStmt) Execute(ctx context.Context, mode pdooci.CommitMode) error {
	ret := _m.Called(ctx, mode)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, pdooci.CommitMode) error); ok {
		r0 = rf(ctx, mode)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
func (_m *NativeStmt) Fetch(ctx context.Context) ([]interface{}, error) {
	ret := _m.Called(ctx)

	var r0 []interface{}
	if rf, ok := ret.Get(0).(func(context.Context) []interface{}); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]interface{})
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
func (_m *NativeStmt) Columns() []pdooci.ColumnMeta {
	ret := _m.Called()

	var r0 []pdooci.ColumnMeta
	if rf, ok := ret.Get(0).(func() []pdooci.ColumnMeta); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]pdooci.ColumnMeta)
		}
	}

	return r0
}
func (_m *NativeStmt) NumRows() int64 {
	ret := _m.Called()

	var r0 int64
	if rf, ok := ret.Get(0).(func() int64); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(int64)
	}

	return r0
}
func (_m *NativeStmt) SaveLOB(ctx context.Context, name string) error {
	ret := _m.Called(ctx, name)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, name)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
func (_m *NativeStmt) Free() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

var (
	_ pdooci.Connector  = (*Connector)(nil)
	_ pdooci.NativeConn = (*NativeConn)(nil)
	_ pdooci.NativeStmt = (*NativeStmt)(nil)
)
