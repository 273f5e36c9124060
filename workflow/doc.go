// Package workflow implements the client side of the Linked API workflow
// protocol.
//
// A workflow is submitted as a JSON Definition, runs asynchronously on the
// server and is observed by polling until it reaches a terminal state:
//
//	op := workflow.NewOperation("fetchPerson", mapper, transport)
//	id, err := op.Execute(ctx, params)
//	...
//	res, err := op.Result(ctx, id, workflow.WithTimeout(10*time.Minute))
//
// Mappers translate typed params into definitions and completions back into
// MappedResponse values. Per-action failures are returned as data in
// MappedResponse.Errors; request, workflow and timeout failures are Go errors
// (*RequestError, *WorkflowError, *TimeoutError).
package workflow
