// Package idgen выдает идентификаторы для сущностей сервера.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// Generator creates IDs for posts and comments (snowflake) and users (UUID v4)
type Generator struct {
	node *snowflake.Node
}

// New создает генератор для snowflake-узла nodeID (0..1023)
func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &Generator{node: node}, nil
}

// Next возвращает новый time-ordered ID
func (g *Generator) Next() string {
	return g.node.Generate().String()
}

// UserID возвращает новый UUID пользователя
func (g *Generator) UserID() string {
	return uuid.New().String()
}
