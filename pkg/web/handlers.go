package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/model"
	"github.com/ritzau/taskboard/pkg/store"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// AddNodeRequest creates a task, optionally wired from an existing node
type AddNodeRequest struct {
	Position model.Position    `json:"position"`
	Task     model.TaskPatch   `json:"task"`
	Connect  *model.Connection `json:"connect,omitempty"` // Source (and handles) to wire from
}

// AddGroupRequest creates a group container
type AddGroupRequest struct {
	Position model.Position `json:"position"`
	Title    string         `json:"title"`
	Color    string         `json:"color"`
}

// MoveRequest reparents a task. An empty GroupID moves it out of its group.
type MoveRequest struct {
	GroupID string `json:"groupId"`
}

// EdgeTypeRequest sets an edge's type
type EdgeTypeRequest struct {
	Type model.EdgeType `json:"type"`
}

// PresetRequest switches the active preset
type PresetRequest struct {
	ID string `json:"id"`
}

// NodeRefRequest names a node for selection or editing. An empty NodeID clears it.
type NodeRefRequest struct {
	NodeID string `json:"nodeId"`
}

// CreatedResponse carries the ID of a created entity
type CreatedResponse struct {
	ID string `json:"id"`
}

// PresetsResponse lists the presets and the active one
type PresetsResponse struct {
	Presets []model.Preset `json:"presets"`
	Active  string         `json:"active"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		logging.DebugContext(r.Context(), "invalid request body", "path", r.URL.Path, "error", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.State())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Status())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.View())
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PresetsResponse{
		Presets: s.store.Presets(),
		Active:  s.store.ActivePreset().ID,
	})
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req AddNodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var id string
	if req.Connect != nil {
		if _, ok := s.store.Node(req.Connect.Source); !ok {
			http.Error(w, fmt.Sprintf("Node not found: %s", req.Connect.Source), http.StatusNotFound)
			return
		}
		id = s.store.AddConnectedNode(req.Position, req.Task, *req.Connect)
	} else {
		id = s.store.AddNode(req.Position, req.Task)
	}

	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	node, ok := s.store.Node(id)
	if !ok {
		http.Error(w, fmt.Sprintf("Node not found: %s", id), http.StatusNotFound)
		return
	}

	// The body is a task or group patch depending on the node's kind
	if node.IsGroup() {
		var patch model.GroupPatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		s.store.UpdateGroup(id, patch)
	} else {
		var patch model.TaskPatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		s.store.UpdateNode(id, patch)
	}
	s.writeNode(w, id)
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.store.Node(id); !ok {
		http.Error(w, fmt.Sprintf("Node not found: %s", id), http.StatusNotFound)
		return
	}

	s.store.DeleteNode(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMoveNodeToGroup(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	node, ok := s.store.Node(id)
	if !ok || !node.IsTask() {
		http.Error(w, fmt.Sprintf("Task not found: %s", id), http.StatusNotFound)
		return
	}

	var req MoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.GroupID != "" {
		if group, ok := s.store.Node(req.GroupID); !ok || !group.IsGroup() {
			http.Error(w, fmt.Sprintf("Group not found: %s", req.GroupID), http.StatusNotFound)
			return
		}
	}

	s.store.MoveNodeToGroup(id, req.GroupID)
	s.writeNode(w, id)
}

func (s *Server) handleAddGroup(w http.ResponseWriter, r *http.Request) {
	var req AddGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := s.store.AddGroupNode(req.Position, req.Title, req.Color)
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) handleToggleGroup(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if node, ok := s.store.Node(id); !ok || !node.IsGroup() {
		http.Error(w, fmt.Sprintf("Group not found: %s", id), http.StatusNotFound)
		return
	}

	s.store.ToggleGroupCollapse(id)
	s.writeNode(w, id)
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var conn model.Connection
	if !decodeJSON(w, r, &conn) {
		return
	}

	id := s.store.AddEdge(conn)
	if id == "" {
		http.Error(w, "Edge not created: self-loop, duplicate or missing endpoint", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

func (s *Server) handleRemoveEdge(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.store.Edge(id); !ok {
		http.Error(w, fmt.Sprintf("Edge not found: %s", id), http.StatusNotFound)
		return
	}

	s.store.RemoveEdge(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCycleEdge(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.store.Edge(id); !ok {
		http.Error(w, fmt.Sprintf("Edge not found: %s", id), http.StatusNotFound)
		return
	}

	s.store.CycleEdgeType(id)
	s.writeEdge(w, id)
}

func (s *Server) handleSetEdgeType(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.store.Edge(id); !ok {
		http.Error(w, fmt.Sprintf("Edge not found: %s", id), http.StatusNotFound)
		return
	}

	var req EdgeTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Type.Valid() {
		http.Error(w, fmt.Sprintf("Unknown edge type: %s", req.Type), http.StatusBadRequest)
		return
	}

	s.store.SetEdgeType(id, req.Type)
	s.writeEdge(w, id)
}

func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var patch model.FilterPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	s.store.SetFilters(patch)
	writeJSON(w, http.StatusOK, s.store.Filters())
}

func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	s.store.ClearFilters()
	writeJSON(w, http.StatusOK, s.store.Filters())
}

func (s *Server) handleSetPreset(w http.ResponseWriter, r *http.Request) {
	var req PresetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	active, ok := s.store.SetPreset(req.ID)
	if !ok {
		http.Error(w, fmt.Sprintf("Preset not found: %s", req.ID), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	s.handleNodeRef(w, r, s.store.SetSelectedNode, s.store.SelectedNode)
}

func (s *Server) handleSetEditing(w http.ResponseWriter, r *http.Request) {
	s.handleNodeRef(w, r, s.store.SetEditingNode, s.store.EditingNode)
}

func (s *Server) handleNodeRef(w http.ResponseWriter, r *http.Request, set func(string), get func() string) {
	var req NodeRefRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.NodeID != "" {
		if _, ok := s.store.Node(req.NodeID); !ok {
			http.Error(w, fmt.Sprintf("Node not found: %s", req.NodeID), http.StatusNotFound)
			return
		}
	}

	set(req.NodeID)
	writeJSON(w, http.StatusOK, NodeRefRequest{NodeID: get()})
}

func (s *Server) handleNodeChanges(w http.ResponseWriter, r *http.Request) {
	var changes []store.NodeChange
	if !decodeJSON(w, r, &changes) {
		return
	}

	s.store.ApplyNodeChanges(changes)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEdgeChanges(w http.ResponseWriter, r *http.Request) {
	var changes []store.EdgeChange
	if !decodeJSON(w, r, &changes) {
		return
	}

	s.store.ApplyEdgeChanges(changes)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.store.Undo()
	writeJSON(w, http.StatusOK, s.store.Status())
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.store.Redo()
	writeJSON(w, http.StatusOK, s.store.Status())
}

func (s *Server) writeNode(w http.ResponseWriter, id string) {
	node, ok := s.store.Node(id)
	if !ok {
		http.Error(w, fmt.Sprintf("Node not found: %s", id), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (s *Server) writeEdge(w http.ResponseWriter, id string) {
	edge, ok := s.store.Edge(id)
	if !ok {
		http.Error(w, fmt.Sprintf("Edge not found: %s", id), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, edge)
}
