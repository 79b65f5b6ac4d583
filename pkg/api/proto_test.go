package api

import (
	"os"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"testing"
)

var (
	messageRE = regexp.MustCompile(`(?s)message (\w+) \{(.*?)\}`)
	fieldRE   = regexp.MustCompile(`(?m)^\s*(?:repeated\s+)?\w+\s+(\w+)\s*=\s*\d+;`)
)

var messages = map[string]any{
	"Item":                   Item{},
	"Bill":                   Bill{},
	"User":                   User{},
	"ShareRecord":            ShareRecord{},
	"SplitShare":             SplitShare{},
	"Split":                  Split{},
	"PutBillRequest":         PutBillRequest{},
	"PutBillResponse":        PutBillResponse{},
	"GetBillRequest":         GetBillRequest{},
	"GetBillResponse":        GetBillResponse{},
	"GetSharesRequest":       GetSharesRequest{},
	"GetSharesResponse":      GetSharesResponse{},
	"SubmitSharesRequest":    SubmitSharesRequest{},
	"SubmitSharesResponse":   SubmitSharesResponse{},
	"GetCalculationRequest":  GetCalculationRequest{},
	"GetCalculationResponse": GetCalculationResponse{},
	"AddUsersRequest":        AddUsersRequest{},
	"AddUsersResponse":       AddUsersResponse{},
	"ListUsersRequest":       ListUsersRequest{},
	"ListUsersResponse":      ListUsersResponse{},
	"RemoveUserRequest":      RemoveUserRequest{},
	"RemoveUserResponse":     RemoveUserResponse{},
}

// lowerCamel is the proto3 JSON name of a snake_case field.
func lowerCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func jsonNames(v any) []string {
	var names []string
	t := reflect.TypeOf(v)
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// The structs must stay in sync with the .proto they would be generated from.
func TestMessagesMatchProto(t *testing.T) {
	data, err := os.ReadFile("../../proto/splitter/v1/splitter.proto")
	if err != nil {
		t.Fatalf("read proto: %v", err)
	}

	seen := make(map[string]bool)
	for _, m := range messageRE.FindAllStringSubmatch(string(data), -1) {
		name, body := m[1], m[2]
		seen[name] = true

		msg, ok := messages[name]
		if !ok {
			t.Errorf("proto message %s has no Go struct", name)
			continue
		}
		var want []string
		for _, f := range fieldRE.FindAllStringSubmatch(body, -1) {
			want = append(want, lowerCamel(f[1]))
		}
		sort.Strings(want)
		if got := jsonNames(msg); !reflect.DeepEqual(got, want) {
			t.Errorf("%s JSON fields = %v, proto has %v", name, got, want)
		}
	}

	for name := range messages {
		if !seen[name] {
			t.Errorf("Go struct %s is missing from the proto", name)
		}
	}
}
