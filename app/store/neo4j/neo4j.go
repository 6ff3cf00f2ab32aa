// Package neo4j implements the store interface on a Neo4j server.
// Task and Done are separate node labels joined on task_id, mirroring
// the relational layout. Integer ids come from Sequence counter nodes
// so the wire contract (integer ids) holds on this backend too.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"todo-api/app/models"
)

type Store struct {
	driver neo4j.DriverWithContext
}

// Open connects to the Neo4j server at uri with basic auth.
func Open(ctx context.Context, uri, username, password string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("open neo4j: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return &Store{driver: driver}, nil
}

func (s *Store) Close(ctx context.Context) error { return s.driver.Close(ctx) }

func (s *Store) CreateTask(ctx context.Context, title string) (models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MERGE (c:Sequence {name: 'task'}) "+
				"SET c.value = coalesce(c.value, 0) + 1 "+
				"WITH c.value AS id "+
				"CREATE (t:Task {id: id, title: $title}) "+
				"RETURN t.id AS id",
			map[string]any{"title": title},
		)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return record.Values[0].(int64), nil
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return models.Task{ID: result.(int64), Title: title}, nil
}

func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task) "+
				"OPTIONAL MATCH (d:Done {task_id: t.id}) "+
				"RETURN t.id AS id, t.title AS title, d.id AS done_id "+
				"ORDER BY t.id ASC",
			nil,
		)
		if err != nil {
			return nil, err
		}

		var tasks []models.Task
		for res.Next(ctx) {
			record := res.Record()
			tasks = append(tasks, models.Task{
				ID:    record.Values[0].(int64),
				Title: record.Values[1].(string),
				Done:  record.Values[2] != nil,
			})
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return result.([]models.Task), nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) "+
				"OPTIONAL MATCH (d:Done {task_id: t.id}) "+
				"RETURN t.id AS id, t.title AS title, d.id AS done_id",
			map[string]any{"id": id},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, models.ErrTaskNotFound
		}
		record := res.Record()
		return models.Task{
			ID:    record.Values[0].(int64),
			Title: record.Values[1].(string),
			Done:  record.Values[2] != nil,
		}, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return result.(models.Task), nil
}

func (s *Store) UpdateTaskTitle(ctx context.Context, id int64, title string) (models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) SET t.title = $title RETURN t.id",
			map[string]any{"id": id, "title": title},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, models.ErrTaskNotFound
		}
		return nil, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes the task node and cascades to its done marker
// inside the same write transaction.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) "+
				"OPTIONAL MATCH (d:Done {task_id: t.id}) "+
				"DETACH DELETE t, d "+
				"RETURN count(t)",
			map[string]any{"id": id},
		)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		if record.Values[0].(int64) == 0 {
			return nil, models.ErrTaskNotFound
		}
		return nil, nil
	})
	return err
}

func (s *Store) GetDone(ctx context.Context, taskID int64) (models.Done, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (d:Done {task_id: $task_id}) RETURN d.id AS id, d.task_id AS task_id",
			map[string]any{"task_id": taskID},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, models.ErrDoneNotFound
		}
		record := res.Record()
		return models.Done{
			ID:     record.Values[0].(int64),
			TaskID: record.Values[1].(int64),
		}, nil
	})
	if err != nil {
		return models.Done{}, err
	}
	return result.(models.Done), nil
}

// CreateDone creates a marker node for the task id. Task existence is
// not checked; markers for unknown task ids are allowed. Unlike the
// sqlite backend there is no uniqueness constraint here, so a mark
// racing past the caller's existence check can produce a duplicate
// node; the service-level check remains the only guard on this backend.
func (s *Store) CreateDone(ctx context.Context, taskID int64) (models.Done, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MERGE (c:Sequence {name: 'done'}) "+
				"SET c.value = coalesce(c.value, 0) + 1 "+
				"WITH c.value AS id "+
				"CREATE (d:Done {id: id, task_id: $task_id}) "+
				"RETURN d.id AS id",
			map[string]any{"task_id": taskID},
		)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return record.Values[0].(int64), nil
	})
	if err != nil {
		return models.Done{}, fmt.Errorf("create done: %w", err)
	}
	return models.Done{ID: result.(int64), TaskID: taskID}, nil
}

func (s *Store) DeleteDone(ctx context.Context, done models.Done) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (d:Done {id: $id}) DELETE d RETURN count(d)",
			map[string]any{"id": done.ID},
		)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		if record.Values[0].(int64) == 0 {
			return nil, models.ErrDoneNotFound
		}
		return nil, nil
	})
	return err
}
