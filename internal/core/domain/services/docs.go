// Package services holds the pure domain rules of the order workflow:
//   - AuthorizationPolicy: who may move an order and who may see it
//   - RiderAssignment: who may assign which rider, and when
//   - NotificationPlanner: which notifications a committed change produces
//
// None of them perform I/O; the application layer loads the inputs and
// persists the outputs.
package services
