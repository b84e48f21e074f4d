package model

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hkroes/aquanet/pkg/network"
)

const timeLayout = time.RFC3339

// escID quotes an identifier for use in SQL. Table names contain spaces and
// slashes per the "NodeType / tablename" convention.
func escID(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func sqlType(k Kind) string {
	switch k {
	case KindInt:
		return "INTEGER"
	case KindFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// writeDatabase persists the node table, the edge table, and every non-empty
// parameter table into a fresh SQLite container at path. The container is
// written to a temporary file and renamed into place so a failure never
// leaves a partial file behind.
func (m *Model) writeDatabase(path string) (err error) {
	tmp := path + ".tmp"
	_ = os.Remove(tmp)
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	db, err := sql.Open("sqlite", tmp)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = m.writeNodeTable(tx); err != nil {
		return err
	}
	if err = m.writeEdgeTable(tx); err != nil {
		return err
	}
	for _, t := range m.tableViews() {
		if t.Len() == 0 {
			continue
		}
		if err = writeParameterTable(tx, t); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	if err = db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	_ = os.Remove(path)
	return os.Rename(tmp, path)
}

func (m *Model) writeNodeTable(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE "Node" (
		node_id INTEGER PRIMARY KEY,
		name TEXT,
		node_type TEXT NOT NULL,
		subnetwork_id INTEGER,
		x REAL,
		y REAL
	)`)
	if err != nil {
		return fmt.Errorf("create Node table: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO "Node" (node_id, name, node_type, subnetwork_id, x, y) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, node := range m.nodes.All() {
		_, err := stmt.Exec(node.ID, node.Name, string(node.Type), node.SubnetworkID, node.Location.X, node.Location.Y)
		if err != nil {
			return fmt.Errorf("insert node %d: %w", node.ID, err)
		}
	}
	return nil
}

func (m *Model) writeEdgeTable(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE "Edge" (
		edge_id INTEGER PRIMARY KEY,
		name TEXT,
		from_node_id INTEGER NOT NULL,
		to_node_id INTEGER NOT NULL,
		edge_type TEXT NOT NULL,
		subnetwork_id INTEGER,
		from_x REAL, from_y REAL, to_x REAL, to_y REAL
	)`)
	if err != nil {
		return fmt.Errorf("create Edge table: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO "Edge"
		(edge_id, name, from_node_id, to_node_id, edge_type, subnetwork_id, from_x, from_y, to_x, to_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, edge := range m.edges.All() {
		_, err := stmt.Exec(edge.ID, edge.Name, edge.FromNodeID, edge.ToNodeID, string(edge.Type),
			edge.SubnetworkID, edge.Geometry[0].X, edge.Geometry[0].Y, edge.Geometry[1].X, edge.Geometry[1].Y)
		if err != nil {
			return fmt.Errorf("insert edge %d: %w", edge.ID, err)
		}
	}
	return nil
}

func writeParameterTable(tx *sql.Tx, t tableView) error {
	schema := t.Schema()
	cols := make([]string, len(schema.Columns))
	marks := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		cols[i] = fmt.Sprintf("%s %s", escID(col.Name), sqlType(col.Kind))
		marks[i] = "?"
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", escID(schema.Name()), strings.Join(cols, ", "))
	if _, err := tx.Exec(createSQL); err != nil {
		return fmt.Errorf("create table %q: %w", schema.Name(), err)
	}

	names := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		names[i] = escID(col.Name)
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		escID(schema.Name()), strings.Join(names, ", "), strings.Join(marks, ", "))
	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, record := range t.encodeRows() {
		if err := schema.Check(record); err != nil {
			return err
		}
		args := make([]any, len(record))
		for i, v := range record {
			if t, ok := v.(time.Time); ok {
				args[i] = t.UTC().Format(timeLayout)
			} else {
				args[i] = v
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert into %q: %w", schema.Name(), err)
		}
	}
	return nil
}

// readDatabase loads nodes, edges, and parameter tables from an SQLite
// container into the model.
func (m *Model) readDatabase(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("database %q: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := m.readNodeTable(db); err != nil {
		return err
	}
	if err := m.readEdgeTable(db); err != nil {
		return err
	}
	for _, t := range m.tableViews() {
		if err := readParameterTable(db, t); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) readNodeTable(db *sql.DB) error {
	rows, err := db.Query(`SELECT node_id, name, node_type, subnetwork_id, x, y FROM "Node" ORDER BY node_id`)
	if err != nil {
		return fmt.Errorf("read Node table: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			node         network.Node
			name         sql.NullString
			nodeType     string
			subnetworkID sql.NullInt64
		)
		if err := rows.Scan(&node.ID, &name, &nodeType, &subnetworkID, &node.Location.X, &node.Location.Y); err != nil {
			return fmt.Errorf("scan Node row: %w", err)
		}
		node.Name = name.String
		node.Type = network.NodeType(nodeType)
		node.SubnetworkID = subnetworkID.Int64
		if err := m.nodes.Restore(node); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (m *Model) readEdgeTable(db *sql.DB) error {
	rows, err := db.Query(`SELECT edge_id, name, from_node_id, to_node_id, edge_type, subnetwork_id,
		from_x, from_y, to_x, to_y FROM "Edge" ORDER BY edge_id`)
	if err != nil {
		return fmt.Errorf("read Edge table: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			edge         network.Edge
			name         sql.NullString
			edgeType     string
			subnetworkID sql.NullInt64
		)
		if err := rows.Scan(&edge.ID, &name, &edge.FromNodeID, &edge.ToNodeID, &edgeType, &subnetworkID,
			&edge.Geometry[0].X, &edge.Geometry[0].Y, &edge.Geometry[1].X, &edge.Geometry[1].Y); err != nil {
			return fmt.Errorf("scan Edge row: %w", err)
		}
		edge.Name = name.String
		edge.Type = network.EdgeType(edgeType)
		edge.SubnetworkID = subnetworkID.Int64
		if err := m.edges.Restore(edge); err != nil {
			return err
		}
	}
	return rows.Err()
}

func readParameterTable(db *sql.DB, t tableView) error {
	schema := t.Schema()
	if !tableExists(db, schema.Name()) {
		return nil
	}
	names := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		names[i] = escID(col.Name)
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(names, ", "), escID(schema.Name()))
	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("read table %q: %w", schema.Name(), err)
	}
	defer rows.Close()

	for rows.Next() {
		holders := make([]any, len(schema.Columns))
		for i := range holders {
			holders[i] = new(any)
		}
		if err := rows.Scan(holders...); err != nil {
			return fmt.Errorf("scan %q row: %w", schema.Name(), err)
		}
		record := make([]any, len(schema.Columns))
		for i, col := range schema.Columns {
			v, err := fromSQLValue(*holders[i].(*any), col)
			if err != nil {
				return fmt.Errorf("table %q: %w", schema.Name(), err)
			}
			record[i] = v
		}
		if err := t.decodeRow(record); err != nil {
			return err
		}
	}
	return rows.Err()
}

// fromSQLValue converts a driver value to the Go type the column kind
// declares.
func fromSQLValue(v any, col Column) (any, error) {
	if v == nil {
		if col.Nullable {
			return nil, nil
		}
		return nil, fmt.Errorf("column %q is null", col.Name)
	}
	switch col.Kind {
	case KindInt:
		switch n := v.(type) {
		case int64:
			return n, nil
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		}
	case KindText:
		switch s := v.(type) {
		case string:
			return s, nil
		case []byte:
			return string(s), nil
		}
	case KindTime:
		var s string
		switch raw := v.(type) {
		case string:
			s = raw
		case []byte:
			s = string(raw)
		case time.Time:
			return raw, nil
		default:
			return nil, fmt.Errorf("column %q: unexpected time representation %T", col.Name, v)
		}
		ts, err := time.Parse(timeLayout, s)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		return ts, nil
	}
	return nil, fmt.Errorf("column %q expects %s, got %T", col.Name, col.Kind, v)
}

func tableExists(db *sql.DB, name string) bool {
	var found string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&found)
	return err == nil
}
