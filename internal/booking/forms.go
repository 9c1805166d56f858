package booking

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/brightpaws/frontdesk/internal/petcare"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// OwnerForm is the contact section of the details stage. Required fields
// are checked client-side; nothing is sent to the network until they pass.
type OwnerForm struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"address_line1,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
}

// PetForm is one pet section of the details stage.
type PetForm struct {
	Name    string `json:"name" validate:"required"`
	Species string `json:"species" validate:"required,oneof=dog cat other"`
	Breed   string `json:"breed,omitempty"`
	Weight  *int   `json:"weight,omitempty" validate:"omitempty,gt=0"`
}

// validateDetails runs the client-side required-field checks for the whole
// details submission.
func validateDetails(owner OwnerForm, pets []PetForm) error {
	if err := validate.Struct(owner); err != nil {
		return fmt.Errorf("booking: invalid contact details: %w", err)
	}
	if len(pets) == 0 {
		return ErrNoPets
	}
	for i, pet := range pets {
		if err := validate.Struct(pet); err != nil {
			return fmt.Errorf("booking: invalid pet %d: %w", i+1, err)
		}
	}
	return nil
}

func (f OwnerForm) input() petcare.OwnerInput {
	return petcare.OwnerInput{
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Email:        f.Email,
		Phone:        f.Phone,
		AddressLine1: f.AddressLine1,
		City:         f.City,
		State:        f.State,
		ZipCode:      f.ZipCode,
	}
}

func (f PetForm) input() petcare.PetInput {
	return petcare.PetInput{
		Name:    f.Name,
		Species: f.Species,
		Breed:   f.Breed,
		Weight:  f.Weight,
	}
}
