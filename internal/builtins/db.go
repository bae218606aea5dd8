package builtins

import (
	"database/sql"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerDB wires a small SQLite surface over modernc.org/sqlite
// (db_open/db_exec/db_query/db_close). The teacher's go.mod carries this
// dependency but no teacher .go file imports it (SPEC_FULL.md's domain-stack
// wiring table), so this family is new rather than adapted — grounded on
// spec.md §6's "host collaborators are named only by intent" license, built
// in the registry's plain name-keyed Fn style used by every other family
// here.
type dbHandle struct {
	db *sql.DB
}

var (
	dbMu      sync.Mutex
	dbHandles = map[int64]*dbHandle{}
	dbNextID  int64
)

func registerDB(r *Registry) {
	r.register("db_open", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		path, err := wantString("db_open", args, 0)
		if err != nil {
			return nil, err
		}
		sqlDB, oerr := sql.Open("sqlite", path)
		if oerr != nil {
			return value.Result("Err", value.Str(oerr.Error())), nil
		}
		if perr := sqlDB.Ping(); perr != nil {
			return value.Result("Err", value.Str(perr.Error())), nil
		}
		dbMu.Lock()
		dbNextID++
		id := dbNextID
		dbHandles[id] = &dbHandle{db: sqlDB}
		dbMu.Unlock()
		return value.Result("Ok", value.Int(id)), nil
	})

	r.register("db_exec", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		h, err := dbLookup("db_exec", args, 0)
		if err != nil {
			return nil, err
		}
		query, qerr := wantString("db_exec", args, 1)
		if qerr != nil {
			return nil, qerr
		}
		params, perr := dbParams(args[2:])
		if perr != nil {
			return nil, perr
		}
		res, eerr := h.db.Exec(query, params...)
		if eerr != nil {
			return value.Result("Err", value.Str(eerr.Error())), nil
		}
		affected, _ := res.RowsAffected()
		return value.Result("Ok", value.Int(affected)), nil
	})

	r.register("db_query", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		h, err := dbLookup("db_query", args, 0)
		if err != nil {
			return nil, err
		}
		query, qerr := wantString("db_query", args, 1)
		if qerr != nil {
			return nil, qerr
		}
		params, perr := dbParams(args[2:])
		if perr != nil {
			return nil, perr
		}
		rows, rerr := h.db.Query(query, params...)
		if rerr != nil {
			return value.Result("Err", value.Str(rerr.Error())), nil
		}
		defer rows.Close()
		cols, cerr := rows.Columns()
		if cerr != nil {
			return value.Result("Err", value.Str(cerr.Error())), nil
		}
		var out []value.Value
		for rows.Next() {
			scanTargets := make([]interface{}, len(cols))
			scanVals := make([]interface{}, len(cols))
			for i := range scanTargets {
				scanTargets[i] = &scanVals[i]
			}
			if serr := rows.Scan(scanTargets...); serr != nil {
				return value.Result("Err", value.Str(serr.Error())), nil
			}
			obj := value.NewObject()
			for i, col := range cols {
				obj = obj.Set(col, dbValueToValue(scanVals[i]))
			}
			out = append(out, obj)
		}
		return value.Result("Ok", value.NewArray(out)), nil
	})

	r.register("db_close", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		id, err := wantInt("db_close", args, 0)
		if err != nil {
			return nil, err
		}
		dbMu.Lock()
		h, ok := dbHandles[id]
		if ok {
			delete(dbHandles, id)
		}
		dbMu.Unlock()
		if !ok {
			return nil, diagnostics.Runtimef("db_close: no such handle %d", id)
		}
		h.db.Close()
		return value.Nil{}, nil
	})
}

func dbLookup(name string, args []value.Value, i int) (*dbHandle, *diagnostics.Error) {
	id, err := wantInt(name, args, i)
	if err != nil {
		return nil, err
	}
	dbMu.Lock()
	h, ok := dbHandles[id]
	dbMu.Unlock()
	if !ok {
		return nil, diagnostics.Runtimef("%s: no such db handle %d", name, id)
	}
	return h, nil
}

func dbParams(args []value.Value) ([]interface{}, *diagnostics.Error) {
	out := make([]interface{}, len(args))
	for i, a := range args {
		out[i] = toNative(a)
	}
	return out, nil
}

func dbValueToValue(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Nil{}
	case int64:
		return value.Int(t)
	case float64:
		return value.Float(t)
	case string:
		return value.Str(t)
	case []byte:
		return value.Str(string(t))
	case bool:
		return value.Bool(t)
	}
	return value.Nil{}
}
