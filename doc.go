// Package ledsign drives a 320x64 RGB LED matrix attached to an FPGA
// receiver card over a proprietary Layer-2 Ethernet protocol.
//
// The hard real-time work lives in two subsystems: the sender
// (internal/sender) is a frame pump that repackages BGRA frames into the
// FPGA's row and commit packets and emits them on a raw Layer-2 socket on
// a 240Hz deadline; the player (internal/player) is a headless canvas
// renderer that compiles a declarative movie into timed tween tracks and
// produces one raster frame per call.
//
// The director (internal/director) drives the player in-process and feeds
// frames into a shared broker queue; the sensors process
// (internal/sensors) samples ambient light and publishes a 1-100
// brightness value that the director hands to the player. The sender
// reads its own 0-255 hardware brightness key, which the sensors process
// does not write. The sender, director and sensors processes communicate
// solely through internal/brokerclient, never directly with each other.
//
// [Logger] is the logging seam used throughout; cmd/* binaries wire
// github.com/apex/log as the concrete implementation.
package ledsign
