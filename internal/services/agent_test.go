package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/incontext-backend/internal/apierr"
	"github.com/yungbote/incontext-backend/internal/repos/testutil"
)

func TestCreateAgentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	model := testutil.SeedAgentModel(t, ctx, env.db, "gpt-test")
	uctx := authedCtx(user)

	valid := AgentInput{
		Name:         "researcher",
		ModelID:      model.ID,
		Role:         "research assistant",
		Instructions: "find sources",
	}

	cases := []struct {
		name   string
		mutate func(in *AgentInput)
		want   string
	}{
		{name: "missing_name", mutate: func(in *AgentInput) { in.Name = " " }, want: "Name is required."},
		{name: "missing_model", mutate: func(in *AgentInput) { in.ModelID = uuid.Nil }, want: "Model is required."},
		{name: "unknown_model", mutate: func(in *AgentInput) { in.ModelID = uuid.New() }, want: "Model is not recognized."},
		{name: "missing_role", mutate: func(in *AgentInput) { in.Role = "" }, want: "Role is required."},
		{name: "missing_instructions", mutate: func(in *AgentInput) { in.Instructions = "" }, want: "Instructions are required."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := env.agentService.CreateAgent(uctx, in)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("err=%v, want %q", err, tc.want)
			}
		})
	}

	agent, err := env.agentService.CreateAgent(uctx, valid)
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}
	if agent.CreatorID != user.ID {
		t.Fatalf("creator=%v, want %v", agent.CreatorID, user.ID)
	}
}

func TestTetheredAgentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	model := testutil.SeedAgentModel(t, ctx, env.db, "gpt-test")
	actx := authedCtx(admin)
	uctx := authedCtx(user)

	// Tethering a missing master is a 404.
	_, err := env.agentService.CreateTetheredAgent(uctx, uuid.New())
	if status := apierr.StatusOf(err); status != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", status)
	}

	masterAgent, err := env.masterAgentService.CreateMasterAgent(actx, AgentInput{
		Name:         "librarian",
		Description:  "catalog helper",
		ModelID:      model.ID,
		Role:         "librarian",
		Instructions: "catalog things",
	})
	if err != nil {
		t.Fatalf("create master agent: %v", err)
	}

	tethered, err := env.agentService.CreateTetheredAgent(uctx, masterAgent.ID)
	if err != nil {
		t.Fatalf("create tethered agent: %v", err)
	}

	// The agent index shows it joined with the master's fields.
	_, views, err := env.agentService.GetAgents(uctx)
	if err != nil {
		t.Fatalf("get agents: %v", err)
	}
	if len(views) != 1 || views[0].ID != tethered.ID || views[0].Name != "librarian" {
		t.Fatalf("unexpected tethered agent views: %+v", views)
	}

	// Another user cannot delete it.
	other := testutil.SeedUser(t, ctx, env.db, "bob", false)
	err = env.agentService.DeleteTetheredAgent(authedCtx(other), tethered.ID)
	if status := apierr.StatusOf(err); status != http.StatusForbidden {
		t.Fatalf("foreign delete: status=%d, want 403", status)
	}

	// Deleting the master takes the pointers with it.
	if err := env.masterAgentService.DeleteMasterAgent(actx, masterAgent.ID); err != nil {
		t.Fatalf("delete master agent: %v", err)
	}
	if n := env.count(t, "tethered_agents"); n != 0 {
		t.Fatalf("tethered_agents rows=%d, want 0", n)
	}
}

func TestMasterAgentWritesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	model := testutil.SeedAgentModel(t, ctx, env.db, "gpt-test")

	_, err := env.masterAgentService.CreateMasterAgent(authedCtx(user), AgentInput{
		Name:         "librarian",
		ModelID:      model.ID,
		Role:         "librarian",
		Instructions: "catalog things",
	})
	if status := apierr.StatusOf(err); status != http.StatusForbidden {
		t.Fatalf("status=%d, want 403", status)
	}

	// The index is admin-only too.
	_, err = env.masterAgentService.GetMasterAgents(authedCtx(user))
	if status := apierr.StatusOf(err); status != http.StatusForbidden {
		t.Fatalf("non-admin index: status=%d, want 403", status)
	}
	admin := testutil.SeedUser(t, ctx, env.db, "root", true)
	if _, err := env.masterAgentService.GetMasterAgents(authedCtx(admin)); err != nil {
		t.Fatalf("admin index: %v", err)
	}
}
