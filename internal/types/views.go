package types

import (
  "time"
  "github.com/google/uuid"
)

// Read models composed by the services. A cell's DetailID refers to a
// detail for plain lists and to a master detail for tethered lists.

type DetailCell struct {
  DetailID   uuid.UUID   `json:"detail_id"`
  Name       string      `json:"name"`
  Content    string      `json:"content"`
}

type DetailRef struct {
  ID            uuid.UUID   `json:"id"`
  Name          string      `json:"name"`
  Description   string      `json:"description"`
}

type ItemView struct {
  ID          uuid.UUID     `json:"id"`
  Name        string        `json:"name"`
  CreatedAt   time.Time     `json:"created_at"`
  Cells       []DetailCell  `json:"details"`
}

type ListView struct {
  List           *List        `json:"list"`
  Tethered       bool         `json:"tethered"`
  MasterListID   *uuid.UUID   `json:"master_list_id,omitempty"`
  Details        []DetailRef  `json:"details"`
  Items          []*ItemView  `json:"items"`
}

type MasterListView struct {
  MasterList   *MasterList  `json:"master_list"`
  Username     string       `json:"username"`
  Details      []DetailRef  `json:"master_details"`
  Items        []*ItemView  `json:"master_items"`
}

// TetheredAgentView joins a tethered agent with the master agent fields
// it points at.
type TetheredAgentView struct {
  ID              uuid.UUID   `json:"id"`
  MasterAgentID   uuid.UUID   `json:"master_agent_id"`
  Name            string      `json:"name"`
  Description     string      `json:"description"`
  CreatedAt       time.Time   `json:"created_at"`
}
