package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

func (e *DomainError) rejected() {}

// IsRejection reports whether err is a domain rule or validation failure, as
// opposed to an infrastructure fault
func IsRejection(err error) bool {
	var r interface{ rejected() }
	return errors.As(err, &r)
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) rejected() {}

// Missing reference errors

// MissingReferenceError reports an identifier that no longer resolves.
// Raised inside a tick it causes the card to be skipped; raised by a player
// action it is returned to the caller.
type MissingReferenceError struct {
	*DomainError
	Kind string
	ID   string
}

func NewMissingReferenceError(kind, id string) *MissingReferenceError {
	return &MissingReferenceError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s %q not found", kind, id)},
		Kind:        kind,
		ID:          id,
	}
}

type HeroNotFoundError struct {
	*MissingReferenceError
}

func NewHeroNotFoundError(heroID string) *HeroNotFoundError {
	return &HeroNotFoundError{MissingReferenceError: NewMissingReferenceError("hero", heroID)}
}

type CardNotFoundError struct {
	*MissingReferenceError
}

func NewCardNotFoundError(cardID string) *CardNotFoundError {
	return &CardNotFoundError{MissingReferenceError: NewMissingReferenceError("card", cardID)}
}

type TemplateNotFoundError struct {
	*MissingReferenceError
}

// NewTemplateNotFoundError reports a missing catalog entry; kind is item, enemy, biome, region, project, task, class or trait
func NewTemplateNotFoundError(kind, id string) *TemplateNotFoundError {
	return &TemplateNotFoundError{MissingReferenceError: NewMissingReferenceError(kind+" template", id)}
}

// Hero assignment errors

type AssignmentError struct {
	*DomainError
	HeroID string
	CardID string
}

func NewAssignmentError(message, heroID, cardID string) *AssignmentError {
	return &AssignmentError{
		DomainError: &DomainError{Message: message},
		HeroID:      heroID,
		CardID:      cardID,
	}
}

type HeroAlreadyAssignedError struct {
	*AssignmentError
}

func NewHeroAlreadyAssignedError(heroID, currentCardID string) *HeroAlreadyAssignedError {
	return &HeroAlreadyAssignedError{
		AssignmentError: NewAssignmentError(
			fmt.Sprintf("hero %s is already assigned to card %s", heroID, currentCardID),
			heroID,
			currentCardID,
		),
	}
}

type HeroWoundedError struct {
	*AssignmentError
}

func NewHeroWoundedError(heroID, cardID string) *HeroWoundedError {
	return &HeroWoundedError{
		AssignmentError: NewAssignmentError(
			fmt.Sprintf("hero %s is wounded and cannot be assigned", heroID),
			heroID,
			cardID,
		),
	}
}

type CardStaffedError struct {
	*AssignmentError
}

func NewCardStaffedError(cardID, currentHeroID string) *CardStaffedError {
	return &CardStaffedError{
		AssignmentError: NewAssignmentError(
			fmt.Sprintf("card %s already has hero %s assigned", cardID, currentHeroID),
			currentHeroID,
			cardID,
		),
	}
}

type CardGatedError struct {
	*AssignmentError
	Gate string
}

func NewCardGatedError(cardID, gate string) *CardGatedError {
	return &CardGatedError{
		AssignmentError: NewAssignmentError(
			fmt.Sprintf("card %s is waiting on %s", cardID, gate),
			"",
			cardID,
		),
		Gate: gate,
	}
}

type CardCompleteError struct {
	*AssignmentError
}

func NewCardCompleteError(cardID string) *CardCompleteError {
	return &CardCompleteError{
		AssignmentError: NewAssignmentError(
			fmt.Sprintf("card %s is complete", cardID),
			"",
			cardID,
		),
	}
}

type CardNotAssignableError struct {
	*AssignmentError
}

func NewCardNotAssignableError(cardID, cardType string) *CardNotAssignableError {
	return &CardNotAssignableError{
		AssignmentError: NewAssignmentError(
			fmt.Sprintf("card %s of type %s does not accept heroes", cardID, cardType),
			"",
			cardID,
		),
	}
}

// Card action errors

// CardStateError rejects a player action that the card's current state does not allow
type CardStateError struct {
	*DomainError
	CardID string
}

func NewCardStateError(cardID, message string) *CardStateError {
	return &CardStateError{
		DomainError: &DomainError{Message: fmt.Sprintf("card %s: %s", cardID, message)},
		CardID:      cardID,
	}
}

type InvalidSlotItemError struct {
	*CardStateError
	Slot   int
	ItemID string
}

func NewInvalidSlotItemError(cardID string, slot int, itemID, reason string) *InvalidSlotItemError {
	return &InvalidSlotItemError{
		CardStateError: NewCardStateError(cardID, fmt.Sprintf("item %s cannot fill slot %d: %s", itemID, slot, reason)),
		Slot:           slot,
		ItemID:         itemID,
	}
}
