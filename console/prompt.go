package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/ariebrainware/hospital-patient-manager/util"
)

// promptString asks until the user types something other than whitespace.
func (c *Console) promptString(prompt string) (string, error) {
	for {
		value, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, nil
		}
		fmt.Fprintln(c.out, "Input cannot be empty.")
	}
}

func (c *Console) promptAge(prompt string) (string, error) {
	for {
		value, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		age, err := util.ParseAge(value)
		if err == nil {
			return age, nil
		}
		if errors.Is(err, util.ErrAgeOutOfRange) {
			fmt.Fprintf(c.out, "Age must be between %d and %d.\n", util.MinAge, util.MaxAge)
		} else {
			fmt.Fprintln(c.out, "Invalid input. Please enter a number.")
		}
	}
}

func (c *Console) promptGender(prompt string) (string, error) {
	for {
		value, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		if gender, err := util.ParseGender(value); err == nil {
			return gender, nil
		}
		fmt.Fprintln(c.out, "Invalid input. Please enter M, F, or O.")
	}
}

func (c *Console) promptDate(prompt string) (model.Date, error) {
	for {
		value, err := c.readLine(prompt)
		if err != nil {
			return model.Date{}, err
		}
		if date, err := model.ParseDate(value); err == nil {
			return date, nil
		}
		fmt.Fprintln(c.out, "Invalid date format. Please use YYYY-MM-DD.")
	}
}
