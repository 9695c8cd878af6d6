// Package mock provides test doubles for extraction collaborators.
package mock
