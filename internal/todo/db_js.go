//go:build js && wasm

package todo

// On wasm there is no in-process SQLite (the native driver's libc layer has
// no js port), so the browser host supplies one on globalThis.hostSQLite:
//
//	open(path) -> handle
//	close(handle)
//	exec(handle, sql, args)  -> {lastInsertId, rowsAffected}
//	query(handle, sql, args) -> {columns: [...], rows: [[...], ...]}
//	exists(path) -> bool
//	remove(path)
//
// The thin database/sql driver below forwards statements to it, so the
// repository code in this package runs unchanged on both targets.

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"math"
	"syscall/js"
	"time"
)

func init() {
	sql.Register(driverName, hostDriver{})
}

func hostObject() (js.Value, error) {
	host := js.Global().Get("hostSQLite")
	if host.IsUndefined() || host.IsNull() {
		return js.Value{}, errors.New("host does not provide globalThis.hostSQLite")
	}
	return host, nil
}

func prepareDatabaseFile(path string) (string, bool, error) {
	host, err := hostObject()
	if err != nil {
		return "", false, err
	}
	exists, err := callHost(host, "exists", path)
	if err != nil {
		return "", false, err
	}
	return path, !exists.Truthy(), nil
}

func removeDatabaseFiles(path string) {
	if host, err := hostObject(); err == nil {
		_, _ = callHost(host, "remove", path)
	}
}

// callHost invokes a host method, converting a thrown exception into an
// error instead of a panic.
func callHost(v js.Value, method string, args ...any) (res js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			jsErr, ok := r.(js.Error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("host %s: %s", method, jsErr.Value.Call("toString").String())
		}
	}()
	return v.Call(method, args...), nil
}

type hostDriver struct{}

func (hostDriver) Open(name string) (driver.Conn, error) {
	host, err := hostObject()
	if err != nil {
		return nil, err
	}
	handle, err := callHost(host, "open", name)
	if err != nil {
		return nil, err
	}
	return &hostConn{host: host, handle: handle}, nil
}

type hostConn struct {
	host   js.Value
	handle js.Value
}

func (c *hostConn) Prepare(query string) (driver.Stmt, error) {
	return &hostStmt{conn: c, query: query}, nil
}

func (c *hostConn) Close() error {
	_, err := callHost(c.host, "close", c.handle)
	return err
}

func (c *hostConn) Begin() (driver.Tx, error) {
	// Each repository call is its own implicit unit of work.
	return nil, errors.New("transactions are not supported by the host driver")
}

type hostStmt struct {
	conn  *hostConn
	query string
}

func (s *hostStmt) Close() error  { return nil }
func (s *hostStmt) NumInput() int { return -1 }

func (s *hostStmt) Exec(args []driver.Value) (driver.Result, error) {
	res, err := callHost(s.conn.host, "exec", s.conn.handle, s.query, jsArgs(args))
	if err != nil {
		return nil, err
	}
	return hostResult{
		lastID: int64(res.Get("lastInsertId").Float()),
		rows:   int64(res.Get("rowsAffected").Float()),
	}, nil
}

func (s *hostStmt) Query(args []driver.Value) (driver.Rows, error) {
	res, err := callHost(s.conn.host, "query", s.conn.handle, s.query, jsArgs(args))
	if err != nil {
		return nil, err
	}
	colsV := res.Get("columns")
	cols := make([]string, colsV.Length())
	for i := range cols {
		cols[i] = colsV.Index(i).String()
	}
	return &hostRows{columns: cols, rows: res.Get("rows")}, nil
}

type hostResult struct{ lastID, rows int64 }

func (r hostResult) LastInsertId() (int64, error) { return r.lastID, nil }
func (r hostResult) RowsAffected() (int64, error) { return r.rows, nil }

type hostRows struct {
	columns []string
	rows    js.Value
	next    int
}

func (r *hostRows) Columns() []string { return r.columns }
func (r *hostRows) Close() error      { return nil }

func (r *hostRows) Next(dest []driver.Value) error {
	if r.next >= r.rows.Length() {
		return io.EOF
	}
	row := r.rows.Index(r.next)
	r.next++
	for i := range dest {
		dest[i] = goValue(row.Index(i))
	}
	return nil
}

// jsArgs converts bound parameters into values js.ValueOf accepts.
func jsArgs(args []driver.Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case time.Time:
			out[i] = v.UTC().Format(timeLayout)
		case []byte:
			out[i] = string(v)
		default:
			out[i] = v
		}
	}
	return out
}

// goValue maps a host cell back to a driver value. Whole numbers come back
// as int64 so integer columns scan cleanly.
func goValue(v js.Value) driver.Value {
	switch v.Type() {
	case js.TypeNull, js.TypeUndefined:
		return nil
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeNumber:
		f := v.Float()
		if f == math.Trunc(f) {
			return int64(f)
		}
		return f
	default:
		return v.String()
	}
}
