package server

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/euchred/internal/game"
	"github.com/lox/euchred/internal/randutil"
)

// TableService owns every table on the server and routes client messages to
// them. Tables are created once from config at startup.
type TableService struct {
	logger *log.Logger
	tables map[string]*Table
	order  []string
}

// NewTableService builds the configured tables. Tables without a configured
// seed shuffle from the wall clock; seeded tables deal reproducibly.
func NewTableService(logger *log.Logger, clock quartz.Clock, cfg *Config) *TableService {
	s := &TableService{
		logger: logger.WithPrefix("tables"),
		tables: make(map[string]*Table, len(cfg.Tables)),
	}
	for _, tc := range cfg.Tables {
		seed := time.Now().UnixNano()
		if tc.Seed != nil {
			seed = *tc.Seed
		}
		g := game.New(randutil.New(seed))
		s.tables[tc.Name] = NewTable(tc.Name, g, logger, clock, cfg.ReconnectGrace())
		s.order = append(s.order, tc.Name)
		s.logger.Info("table created", "table", tc.Name, "seed", seed)
	}
	return s
}

// GetTable returns a table by id; an empty id means the default table.
func (s *TableService) GetTable(id string) (*Table, bool) {
	if id == "" && len(s.order) > 0 {
		id = s.order[0]
	}
	t, ok := s.tables[id]
	return t, ok
}

// List returns metadata for every table
func (s *TableService) List() TableListData {
	out := TableListData{Tables: make([]TableInfo, 0, len(s.order))}
	for _, id := range s.order {
		out.Tables = append(out.Tables, s.tables[id].Info())
	}
	return out
}

// Dispatch routes one inbound client message
func (s *TableService) Dispatch(c *Connection, msg *Message) {
	switch msg.Type {
	case TypeJoin:
		s.handleJoin(c, msg)

	case TypeListTables:
		if reply, err := NewMessage(TypeTableList, s.List()); err == nil {
			_ = c.Send(reply)
		}

	default:
		table, role := c.Seat()
		if table == nil {
			_ = c.Send(NewErrorMessage(ErrNotSeated))
			return
		}
		if err := table.HandleAction(role, msg); err != nil {
			_ = c.Send(NewErrorMessage(err))
		}
	}
}

func (s *TableService) handleJoin(c *Connection, msg *Message) {
	var data JoinData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		_ = c.Send(NewErrorMessage(err))
		return
	}

	table, ok := s.GetTable(data.TableID)
	if !ok {
		_ = c.Send(NewErrorMessage(ErrUnknownTable))
		return
	}

	role, reconnected, err := table.Join(c, data.PlayerName, data.Seat)
	if err != nil {
		_ = c.Send(NewErrorMessage(err))
		return
	}
	c.SetSeat(table, role)

	joined, err := NewMessage(TypeJoined, JoinedData{
		TableID:     table.ID,
		Seat:        string(role),
		Team:        string(role.Team()),
		Reconnected: reconnected,
	})
	if err == nil {
		_ = c.Send(joined)
	}

	// everyone sees the seat change; the joiner gets a full snapshot
	table.Broadcast()
}

// Disconnect releases a dropped connection's seat into its grace period
func (s *TableService) Disconnect(c *Connection) {
	table, role := c.Seat()
	if table == nil {
		return
	}
	table.Drop(role)
	table.Broadcast()
}
