// Package httpapi provides the JSON REST interface over the goal
// tracking use cases. Handlers only decode and validate requests, call
// the use case services, and encode standardized JSON responses; all
// business logic lives below this layer.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zack-schrag/treeline-goals/internal/domain"
	"github.com/zack-schrag/treeline-goals/internal/usecase/overview"
	"github.com/zack-schrag/treeline-goals/internal/usecase/tracker"
)

// Server is the HTTP adapter over the tracker and overview services
type Server struct {
	Tracker  *tracker.Service
	Overview *overview.Service

	now func() time.Time // injectable for tests
}

// NewServer creates a new HTTP server instance
func NewServer(trackerService *tracker.Service, overviewService *overview.Service) *Server {
	return &Server{
		Tracker:  trackerService,
		Overview: overviewService,
		now:      time.Now,
	}
}

// health responds 200 for liveness probes
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// accounts handles:
//   - GET /accounts → list known account snapshots
func (s *Server) accounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	accounts, err := s.Tracker.AccountRepo.List(r.Context())
	if err != nil {
		mapError(w, err)
		return
	}

	payloads := make([]accountPayload, 0, len(accounts))
	for _, account := range accounts {
		payloads = append(payloads, accountToPayload(account))
	}

	writeJSON(w, http.StatusOK, accountListResponse{Accounts: payloads, Total: len(payloads)})
}

// syncAccounts handles:
//   - POST /accounts/sync → ledger collaborator pushes fresh balances
func (s *Server) syncAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req syncAccountsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	accounts := make([]domain.Account, 0, len(req.Accounts))
	for _, p := range req.Accounts {
		account, err := parseAccount(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		accounts = append(accounts, account)
	}

	if err := s.Tracker.SyncAccounts(r.Context(), accounts); err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"synced": len(accounts)})
}

// goals handles:
//   - POST /goals → create goal
//   - GET  /goals → list active goal statuses
func (s *Server) goals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req goalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		input, err := createInputFromRequest(req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		goal, err := s.Tracker.CreateGoal(r.Context(), input)
		if err != nil {
			mapError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, goalToResponse(*goal))

	case http.MethodGet:
		statuses, err := s.Tracker.ListGoalStatuses(r.Context(), s.now())
		if err != nil {
			mapError(w, err)
			return
		}

		responses := make([]statusResponse, 0, len(statuses))
		for _, status := range statuses {
			responses = append(responses, statusToResponse(status))
		}

		writeJSON(w, http.StatusOK, statusListResponse{Goals: responses, Total: len(responses)})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// goalSubroutes handles:
//
//	GET    /goals/{id}          → fetch goal
//	PUT    /goals/{id}          → replace goal wholesale
//	DELETE /goals/{id}          → delete goal
//	POST   /goals/{id}/complete → mark completed
//	POST   /goals/{id}/reopen   → clear completed state
//	GET    /goals/{id}/status   → derived status
func (s *Server) goalSubroutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/goals/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	id, err := uuid.Parse(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			goal, err := s.Tracker.GoalRepo.GetByID(r.Context(), id)
			if err != nil {
				mapError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, goalToResponse(*goal))

		case http.MethodPut:
			s.updateGoal(w, r, id)

		case http.MethodDelete:
			if err := s.Tracker.DeleteGoal(r.Context(), id); err != nil {
				mapError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "complete":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		goal, err := s.Tracker.CompleteGoal(r.Context(), id)
		if err != nil {
			mapError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, goalToResponse(*goal))

	case "reopen":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		goal, err := s.Tracker.ReopenGoal(r.Context(), id)
		if err != nil {
			mapError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, goalToResponse(*goal))

	case "status":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		status, err := s.Tracker.GoalStatus(r.Context(), id, s.now())
		if err != nil {
			mapError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusToResponse(status))

	default:
		http.NotFound(w, r)
	}
}

// updateGoal builds a whole immutable candidate goal from the request
// body and submits it to the tracker service
func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	goal, err := goalFromRequest(req, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	updated, err := s.Tracker.UpdateGoal(r.Context(), goal)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goalToResponse(*updated))
}

// overview handles:
//   - GET /overview → portfolio totals across active goals
func (s *Server) overview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := s.Overview.GetOverview(r.Context())
	if err != nil {
		mapError(w, err)
		return
	}

	balances := make(map[string]string, len(result.GoalBalances))
	for goalID, balance := range result.GoalBalances {
		balances[goalID.String()] = balance.String()
	}

	writeJSON(w, http.StatusOK, overviewResponse{
		TotalSaved:   result.TotalSaved.String(),
		TotalTarget:  result.TotalTarget.String(),
		GoalBalances: balances,
	})
}

func createInputFromRequest(req goalRequest) (tracker.CreateGoalInput, error) {
	targetAmount, err := parseOptionalAmount(req.TargetAmount)
	if err != nil {
		return tracker.CreateGoalInput{}, err
	}

	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return tracker.CreateGoalInput{}, err
	}

	allocations, err := parseAllocations(req.Allocations)
	if err != nil {
		return tracker.CreateGoalInput{}, err
	}

	initialAmount, err := parseOptionalAmount(req.InitialAmount)
	if err != nil {
		return tracker.CreateGoalInput{}, err
	}

	return tracker.CreateGoalInput{
		Name:          req.Name,
		TargetAmount:  targetAmount,
		TargetDate:    targetDate,
		Allocations:   allocations,
		InitialAmount: initialAmount,
		Icon:          req.Icon,
		Color:         req.Color,
	}, nil
}

func goalFromRequest(req goalRequest, id uuid.UUID) (domain.Goal, error) {
	targetAmount, err := parseOptionalAmount(req.TargetAmount)
	if err != nil {
		return domain.Goal{}, err
	}

	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return domain.Goal{}, err
	}

	startingBalance, err := parseOptionalAmount(req.StartingBalance)
	if err != nil {
		return domain.Goal{}, err
	}

	inputs, err := parseAllocations(req.Allocations)
	if err != nil {
		return domain.Goal{}, err
	}

	rules := make([]domain.AllocationRule, 0, len(inputs))
	for _, a := range inputs {
		rules = append(rules, domain.AllocationRule{
			ID:        uuid.New(),
			GoalID:    id,
			AccountID: a.AccountID,
			Kind:      a.Kind,
			Value:     a.Value,
		})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return domain.Goal{
		ID:              id,
		Name:            req.Name,
		TargetAmount:    targetAmount,
		TargetDate:      targetDate,
		StartingBalance: startingBalance,
		Allocations:     rules,
		Icon:            req.Icon,
		Color:           req.Color,
		IsActive:        isActive,
	}, nil
}
