package mcp

import (
	"encoding/json"
	"testing"

	patchservice "github.com/viant/csspatch/patch/service"
)

func TestBuildSuccessResultOut_Text(t *testing.T) {
	svc := patchservice.NewService(&patchservice.Config{})
	report := &patchservice.Report{RunID: "r1", Results: []patchservice.Result{{Path: "a.css", Status: patchservice.StatusFixed}}, Fixed: 1}
	res, rpcErr := buildSuccessResultOut(svc, report)
	if rpcErr != nil {
		t.Fatalf("unexpected error: %v", rpcErr)
	}
	if len(res.Content) != 1 || res.Content[0].Type != "text" {
		t.Fatalf("expected single text content, got %+v", res.Content)
	}
	var decoded patchservice.Report
	if err := json.Unmarshal([]byte(res.Content[0].Text), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Fixed != 1 || decoded.Results[0].Path != "a.css" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestBuildSuccessResultOut_Structured(t *testing.T) {
	svc := patchservice.NewService(&patchservice.Config{UseData: true})
	res, rpcErr := buildSuccessResultOut(svc, &patchservice.Report{RunID: "r2"})
	if rpcErr != nil {
		t.Fatalf("unexpected error: %v", rpcErr)
	}
	if _, ok := res.StructuredContent["result"]; !ok {
		t.Fatalf("expected structured result, got %+v", res)
	}
}

func TestBuildErrorResult(t *testing.T) {
	res, rpcErr := buildErrorResult("boom")
	if res != nil || rpcErr == nil || rpcErr.Message != "boom" {
		t.Fatalf("unexpected error result: %+v %+v", res, rpcErr)
	}
}
