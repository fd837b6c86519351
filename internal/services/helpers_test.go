package services

import (
	"encoding/json"
	"testing"
)

func runs(texts ...string) map[string]any {
	rs := make([]map[string]any, len(texts))
	for i, t := range texts {
		rs[i] = map[string]any{"text": t}
	}
	return map[string]any{"runs": rs}
}

// musicItem builds a musicResponsiveListItemRenderer with one flex column per tag.
func musicItem(videoID string, tags ...string) map[string]any {
	cols := make([]map[string]any, len(tags))
	for i, t := range tags {
		cols[i] = map[string]any{
			"musicResponsiveListItemFlexColumnRenderer": map[string]any{"text": runs(t)},
		}
	}
	return map[string]any{
		"musicResponsiveListItemRenderer": map[string]any{
			"flexColumns": cols,
			"doubleTapCommand": map[string]any{
				"watchEndpoint":         map[string]any{"videoId": videoID, "playlistId": "RD" + videoID},
				"watchPlaylistEndpoint": map[string]any{"playlistId": "PL" + videoID, "params": "wAEB"},
			},
		},
	}
}

func musicShelf(label string, items []map[string]any, continuation string, expand bool) map[string]any {
	shelf := map[string]any{"contents": items}
	if label != "" {
		shelf["title"] = runs(label)
	}
	if continuation != "" {
		shelf["continuations"] = []map[string]any{{
			"nextContinuationData": map[string]any{"continuation": continuation, "clickTrackingParams": "ct-" + continuation},
		}}
	}
	if expand {
		shelf["bottomEndpoint"] = map[string]any{
			"searchEndpoint": map[string]any{"query": "expand " + label, "params": "EgWKAQIIAWoKEAMQBBAKEAkQBQ=="},
		}
	}
	return map[string]any{"musicShelfRenderer": shelf}
}

func searchBody(sections ...map[string]any) map[string]any {
	return map[string]any{
		"contents": map[string]any{
			"sectionListRenderer": map[string]any{"contents": sections},
		},
	}
}

func continuationBody(items ...map[string]any) map[string]any {
	return map[string]any{
		"continuationContents": map[string]any{
			"musicShelfContinuation": map[string]any{"contents": items},
		},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	return data
}
