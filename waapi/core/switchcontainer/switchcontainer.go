// Package switchcontainer binds the ak.wwise.core.switchContainer procedures
// that manage which child a switch container plays for each state or switch.
package switchcontainer

import (
	"context"

	"waapi-go/waapi"
)

const (
	TopicAssignmentAdded   = "ak.wwise.core.switchContainer.assignmentAdded"
	TopicAssignmentRemoved = "ak.wwise.core.switchContainer.assignmentRemoved"
)

// Operations describes every procedure bound by this package.
var Operations = []waapi.Operation{
	{URI: "ak.wwise.core.switchContainer.addAssignment", Params: []waapi.Param{waapi.P("child", waapi.KindAny), waapi.P("stateOrSwitch", waapi.KindAny)}},
	{URI: "ak.wwise.core.switchContainer.getAssignments", Params: []waapi.Param{waapi.P("id", waapi.KindAny)}, Returns: true},
	{URI: "ak.wwise.core.switchContainer.removeAssignment", Params: []waapi.Param{waapi.P("child", waapi.KindAny), waapi.P("stateOrSwitch", waapi.KindAny)}},
}

func AddAssignment(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.switchContainer.addAssignment", args, nil)
}

func GetAssignments(ctx context.Context, c waapi.Caller, args waapi.Args) (waapi.Result, error) {
	return waapi.Call(ctx, c, "ak.wwise.core.switchContainer.getAssignments", args, nil)
}

func RemoveAssignment(ctx context.Context, c waapi.Caller, args waapi.Args) error {
	return waapi.Invoke(ctx, c, "ak.wwise.core.switchContainer.removeAssignment", args, nil)
}
