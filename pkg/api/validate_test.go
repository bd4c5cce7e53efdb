package api

import (
	"strings"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{
			name: "defaults",
			req:  Request{Group: "g", Language: "js", Scenario: "s"},
		},
		{
			name: "explicit sample actions",
			req:  Request{URL: "https://cdn/sample.zip", Actions: []string{ActionFetchRemote, ActionExtract}},
		},
		{
			name:    "unknown action",
			req:     Request{Actions: []string{ActionExtract, "deploy"}},
			wantErr: `unknown action "deploy"`,
		},
		{
			name:    "duplicate action",
			req:     Request{Actions: []string{ActionExtract, ActionExtract}},
			wantErr: "duplicate action",
		},
		{
			name:    "bad exclude glob",
			req:     Request{Files: FileFilter{Exclude: []string{"[oops"}}},
			wantErr: "files.exclude",
		},
		{
			name:    "bad include glob",
			req:     Request{Files: FileFilter{Include: []string{"[oops"}}},
			wantErr: "files.include",
		},
		{
			name:    "generate without output",
			req:     Request{Generate: []GenerateConfig{{Template: "x"}}},
			wantErr: "output is required",
		},
		{
			name:    "generate without template",
			req:     Request{Generate: []GenerateConfig{{Output: ".env"}}},
			wantErr: "template is required",
		},
		{
			name:    "generate escaping destination",
			req:     Request{Generate: []GenerateConfig{{Output: "../x", Template: "y"}}},
			wantErr: "must be relative",
		},
		{
			name:    "generate escaping through nested dotdot",
			req:     Request{Generate: []GenerateConfig{{Output: "sub/../../escaped.env", Template: "y"}}},
			wantErr: "must be relative",
		},
		{
			name:    "generate absolute output",
			req:     Request{Generate: []GenerateConfig{{Output: "/etc/app.env", Template: "y"}}},
			wantErr: "must be relative",
		},
		{
			name: "generate nested output",
			req:  Request{Generate: []GenerateConfig{{Output: "config/../app.env", Template: "y"}}},
		},
		{
			name: "generate entries but generate action missing",
			req: Request{
				Actions:  []string{ActionFetchLocal, ActionExtract},
				Generate: []GenerateConfig{{Output: ".env", Template: "x"}},
			},
			wantErr: "do not include",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestBatchValidate(t *testing.T) {
	tests := []struct {
		name    string
		batch   Batch
		wantErr string
	}{
		{
			name: "valid",
			batch: Batch{Requests: []Request{
				{Name: "a", Destination: "/tmp/a"},
				{Name: "b", Destination: "/tmp/b"},
			}},
		},
		{
			name:    "empty",
			batch:   Batch{},
			wantErr: "requests list is empty",
		},
		{
			name: "duplicate name",
			batch: Batch{Requests: []Request{
				{Name: "a", Destination: "/tmp/a"},
				{Name: "a", Destination: "/tmp/b"},
			}},
			wantErr: "duplicate name",
		},
		{
			name: "duplicate identity without names",
			batch: Batch{Requests: []Request{
				{Group: "g", Language: "js", Scenario: "s", Destination: "/tmp/a"},
				{Group: "g", Language: "js", Scenario: "s", Destination: "/tmp/b"},
			}},
			wantErr: "duplicate name",
		},
		{
			name: "missing destination",
			batch: Batch{Requests: []Request{
				{Name: "a"},
			}},
			wantErr: "destination is required",
		},
		{
			name: "shared destination",
			batch: Batch{Requests: []Request{
				{Name: "a", Destination: "/tmp/x"},
				{Name: "b", Destination: "/tmp/x"},
			}},
			wantErr: "duplicate destination",
		},
		{
			name: "invalid request",
			batch: Batch{Requests: []Request{
				{Name: "a", Destination: "/tmp/a", Actions: []string{"nope"}},
			}},
			wantErr: `request "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.batch.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
