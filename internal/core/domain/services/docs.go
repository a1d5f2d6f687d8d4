// Package services holds the stateless domain services of the fulfillment
// core: the FIFO inventory allocator and the route planner. Both are pure
// planners over state the command handlers load and persist; neither touches
// storage.
package services
