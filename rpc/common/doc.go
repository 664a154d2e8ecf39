// Package common provides configuration and logging shared by the dWire commands.
//
// Key Components:
//
//   - BenchConfig: Configuration of a benchmark run as read from flags and the
//     environment, with a sectioned String representation and a conversion to
//     the configuration of the lib/bench driver.
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's logger
//     factory, so every package obtains its logger with logger.GetLogger and
//     shares one format and level.
package common
