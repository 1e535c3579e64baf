// Package notification models inbox entries and the intents that produce them.
package notification
