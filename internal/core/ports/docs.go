// Package ports declares what the application core needs from the outside:
// persistence behind a unit of work, the user directory, the restaurant
// catalog and the live channel.
package ports
