// Package service implements the business logic layer of the Delve catalog.
//
// # Services
//
//   - QueryService: read-only lookups and denormalized projections
//   - MutationService: creates, links and deletes documents, keeping every
//     back-reference in step through integrity plans
//   - IntegrityService: audits the catalog and repairs broken references
//
// Constructors take a config struct with repository dependencies. Services
// define their own repository interfaces (see repositories.go).
//
// # Status envelopes
//
// Mutations return a model.Status. Not found, validation and conflict
// failures become an error envelope whose Cause holds the sentinel error;
// store failures are returned as errors:
//
//	status, err := svc.UpdateRoomMonsters(ctx, 3, []int{4, 7})
//	if err != nil {
//	    // store failure
//	}
//	if !status.OK() && errors.Is(status.Cause, service.ErrValidationMismatch) {
//	    // unknown monster ids
//	}
package service
