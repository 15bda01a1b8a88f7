// Package mcp exposes the atlas use cases as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/logger"
	"github.com/a2zdsa/atlas/internal/usecase"
)

// Server wraps the MCP server with atlas-specific tools
type Server struct {
	server *mcp.Server
	atlas  *usecase.Atlas
	log    *logger.Logger
}

// NewServer creates a new MCP server instance
func NewServer(a *usecase.Atlas, log *logger.Logger, version string) *Server {
	if log == nil {
		log = logger.Nop()
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "atlas",
		Version: version,
	}, nil)

	s := &Server{
		server: mcpServer,
		atlas:  a,
		log:    log.With("component", "mcp"),
	}

	s.registerTools()

	return s
}

// Run starts the MCP server with stdio transport
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("mcp server starting")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "atlas_topics",
		Description: "List course sections with their coverage status across both solution collections",
	}, s.handleTopics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "atlas_topic",
		Description: "Get one course section with its related problems and files",
	}, s.handleTopic)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "atlas_mapping",
		Description: "Get the cross-reference record of one problem",
	}, s.handleMapping)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "atlas_coverage",
		Description: "Evaluate coverage of the topic index and list gaps and recommendations",
	}, s.handleCoverage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "atlas_stats",
		Description: "Summarize problem, solution and match counts",
	}, s.handleStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "atlas_plan_today",
		Description: "Get today's study tasks from the study plan",
	}, s.handlePlanToday)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "atlas_search",
		Description: "Search problems by keywords in titles, approaches and sections",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "atlas_complete_task",
		Description: "Mark a study plan task as completed",
	}, s.handleCompleteTask)
}

// Input/Output types for each tool

type TopicsInput struct {
	Section            string `json:"section,omitempty" jsonschema:"case-insensitive substring of the section title"`
	Status             string `json:"status,omitempty" jsonschema:"one of available, partial, missing"`
	IncludeSubsections bool   `json:"includeSubsections,omitempty" jsonschema:"include subsection rows"`
}

type TopicsOutput struct {
	Topics []atlas.TopicIndexEntry `json:"topics"`
}

type TopicInput struct {
	ID string `json:"id" jsonschema:"the topic id, e.g. step03"`
}

type TopicOutput struct {
	Topic atlas.TopicIndexEntry `json:"topic"`
}

type MappingInput struct {
	ProblemID string `json:"problemId" jsonschema:"the problem id from a topic's related problems"`
}

type MappingOutput struct {
	ProblemID         string `json:"problemId"`
	Title             string `json:"title"`
	SectionPath       string `json:"sectionPath"`
	Status            string `json:"status"`
	PrimaryFilePath   string `json:"primaryFilePath,omitempty"`
	SecondaryFilePath string `json:"secondaryFilePath,omitempty"`
	ApproachSummary   string `json:"approachSummary,omitempty"`
	TimeComplexity    string `json:"timeComplexity,omitempty"`
	SpaceComplexity   string `json:"spaceComplexity,omitempty"`
}

type EmptyInput struct{}

type CoverageOutput struct {
	Report atlas.CoverageReport `json:"report"`
}

type StatsOutput struct {
	Stats atlas.Stats `json:"stats"`
}

type PlanTodayOutput struct {
	Date    string            `json:"date"`
	DayName string            `json:"dayName"`
	Minutes int               `json:"minutes"`
	Tasks   []atlas.StudyTask `json:"tasks"`
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"keywords to search for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
}

type SearchHit struct {
	ProblemID   string `json:"problemId"`
	Title       string `json:"title"`
	SectionPath string `json:"sectionPath"`
	Status      string `json:"status"`
	Score       int    `json:"score"`
}

type SearchOutput struct {
	Hits []SearchHit `json:"hits"`
}

type CompleteTaskInput struct {
	TaskID  string `json:"taskId" jsonschema:"the task id from the study plan"`
	Minutes int    `json:"minutes,omitempty" jsonschema:"minutes spent; defaults to the task estimate"`
	Notes   string `json:"notes,omitempty" jsonschema:"free-form notes"`
}

type CompleteTaskOutput struct {
	Message      string `json:"message"`
	TaskID       string `json:"taskId"`
	MinutesSpent int    `json:"minutesSpent"`
}

// Tool handlers

func (s *Server) handleTopics(ctx context.Context, req *mcp.CallToolRequest, input TopicsInput) (*mcp.CallToolResult, TopicsOutput, error) {
	topics, err := s.atlas.Topics(ctx, usecase.TopicFilter{
		Section:            input.Section,
		Status:             atlas.TopicStatus(input.Status),
		IncludeSubsections: input.IncludeSubsections,
	})
	if err != nil {
		return nil, TopicsOutput{}, fmt.Errorf("failed to list topics: %w", err)
	}
	return nil, TopicsOutput{Topics: topics}, nil
}

func (s *Server) handleTopic(ctx context.Context, req *mcp.CallToolRequest, input TopicInput) (*mcp.CallToolResult, TopicOutput, error) {
	topic, err := s.atlas.Topic(ctx, input.ID)
	if err != nil {
		return nil, TopicOutput{}, fmt.Errorf("failed to get topic: %w", err)
	}
	return nil, TopicOutput{Topic: *topic}, nil
}

func (s *Server) handleMapping(ctx context.Context, req *mcp.CallToolRequest, input MappingInput) (*mcp.CallToolResult, MappingOutput, error) {
	m, err := s.atlas.Mapping(ctx, input.ProblemID)
	if err != nil {
		return nil, MappingOutput{}, fmt.Errorf("failed to get mapping: %w", err)
	}
	return nil, MappingOutput{
		ProblemID:         m.ProblemID,
		Title:             m.Title,
		SectionPath:       m.SectionPath,
		Status:            string(m.Status),
		PrimaryFilePath:   m.PrimaryFilePath,
		SecondaryFilePath: m.SecondaryFilePath,
		ApproachSummary:   m.ApproachSummary,
		TimeComplexity:    m.TimeComplexity,
		SpaceComplexity:   m.SpaceComplexity,
	}, nil
}

func (s *Server) handleCoverage(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, CoverageOutput, error) {
	report, err := s.atlas.Coverage(ctx)
	if err != nil {
		return nil, CoverageOutput{}, fmt.Errorf("failed to evaluate coverage: %w", err)
	}
	return nil, CoverageOutput{Report: *report}, nil
}

func (s *Server) handleStats(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.atlas.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	return nil, StatsOutput{Stats: *stats}, nil
}

func (s *Server) handlePlanToday(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, PlanTodayOutput, error) {
	day, err := s.atlas.TodayPlan(ctx)
	if err != nil {
		return nil, PlanTodayOutput{}, fmt.Errorf("failed to get today's plan: %w", err)
	}
	tasks := day.Tasks
	if tasks == nil {
		tasks = []atlas.StudyTask{}
	}
	return nil, PlanTodayOutput{
		Date:    day.Date.Format(atlas.DateLayout),
		DayName: day.DayName,
		Minutes: day.Minutes(),
		Tasks:   tasks,
	}, nil
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	hits, err := s.atlas.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("failed to search: %w", err)
	}

	out := make([]SearchHit, 0, len(hits))
	for _, hit := range hits {
		out = append(out, SearchHit{
			ProblemID:   hit.Record.ProblemID,
			Title:       hit.Record.Title,
			SectionPath: hit.Record.SectionPath,
			Status:      string(hit.Record.Status),
			Score:       hit.Score,
		})
	}
	return nil, SearchOutput{Hits: out}, nil
}

func (s *Server) handleCompleteTask(ctx context.Context, req *mcp.CallToolRequest, input CompleteTaskInput) (*mcp.CallToolResult, CompleteTaskOutput, error) {
	record, err := s.atlas.CompleteTask(ctx, input.TaskID, input.Minutes, input.Notes)
	if err != nil {
		return nil, CompleteTaskOutput{}, fmt.Errorf("failed to complete task: %w", err)
	}
	return nil, CompleteTaskOutput{
		Message:      fmt.Sprintf("Completed %s", record.Title),
		TaskID:       record.TaskID,
		MinutesSpent: record.MinutesSpent,
	}, nil
}
