// Package helpers provides test utilities for handler and e2e tests.
//
// # Requests
//
//	rr := helpers.NewRequest(t, http.MethodPost, "/v1/monsters").
//	    WithBody(req).
//	    Do(router)
//	helpers.AssertStatus(t, rr, http.StatusCreated)
//
// # Problem Details
//
//	helpers.AssertProblemDetails(t, rr, http.StatusNotFound, model.ErrCodeNotFound)
//
// # Database Assertions
//
//	helpers.AssertRecordExists(t, tdb.DB, "rooms", 3)
package helpers
