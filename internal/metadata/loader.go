package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadAll reads services, table schemas and CORS rules from the system
// tables and populates the registry.
func LoadAll(ctx context.Context, pool *pgxpool.Pool, reg *Registry) error {
	services, err := loadServices(ctx, pool)
	if err != nil {
		return fmt.Errorf("load services: %w", err)
	}

	tables, err := loadTables(ctx, pool)
	if err != nil {
		return fmt.Errorf("load table schemas: %w", err)
	}

	cors, err := loadCorsRules(ctx, pool)
	if err != nil {
		return fmt.Errorf("load cors rules: %w", err)
	}

	reg.Load(services, tables, cors)

	log.Printf("Loaded %d services, %d table schemas, %d cors rules into registry",
		len(services), countTables(tables), len(cors))
	return nil
}

// Reload is an alias for LoadAll, called after admin mutations.
func Reload(ctx context.Context, pool *pgxpool.Pool, reg *Registry) error {
	return LoadAll(ctx, pool, reg)
}

func loadServices(ctx context.Context, pool *pgxpool.Pool) ([]*Service, error) {
	rows, err := pool.Query(ctx, "SELECT name, definition FROM _services ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*Service
	for rows.Next() {
		var name string
		var defJSON []byte
		if err := rows.Scan(&name, &defJSON); err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}

		var svc Service
		if err := json.Unmarshal(defJSON, &svc); err != nil {
			log.Printf("WARN: skipping service %s (invalid JSON): %v", name, err)
			continue
		}
		services = append(services, &svc)
	}
	return services, rows.Err()
}

func loadTables(ctx context.Context, pool *pgxpool.Pool) (map[string][]*TableDef, error) {
	rows, err := pool.Query(ctx,
		"SELECT service, name, definition FROM _service_tables ORDER BY service, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make(map[string][]*TableDef)
	for rows.Next() {
		var service, name string
		var defJSON []byte
		if err := rows.Scan(&service, &name, &defJSON); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}

		var def TableDef
		if err := json.Unmarshal(defJSON, &def); err != nil {
			log.Printf("WARN: skipping table %s/%s (invalid JSON): %v", service, name, err)
			continue
		}
		tables[service] = append(tables[service], &def)
	}
	return tables, rows.Err()
}

func loadCorsRules(ctx context.Context, pool *pgxpool.Pool) ([]*CorsRule, error) {
	rows, err := pool.Query(ctx,
		"SELECT id, definition FROM _cors ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*CorsRule
	for rows.Next() {
		var id string
		var defJSON []byte
		if err := rows.Scan(&id, &defJSON); err != nil {
			return nil, fmt.Errorf("scan cors row: %w", err)
		}

		var rule CorsRule
		if err := json.Unmarshal(defJSON, &rule); err != nil {
			log.Printf("WARN: skipping cors rule %s (invalid JSON): %v", id, err)
			continue
		}
		rule.ID = id
		rules = append(rules, &rule)
	}
	return rules, rows.Err()
}

func countTables(tables map[string][]*TableDef) int {
	n := 0
	for _, defs := range tables {
		n += len(defs)
	}
	return n
}
