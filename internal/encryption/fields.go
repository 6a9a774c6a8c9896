package encryption

import "github.com/your-org/sightline/internal/models"

// sensitiveFields lists the text fields encrypted at rest: identifying names,
// contact and address details, and the free-text narratives. Descriptive
// attributes (height, colors, plate) stay plaintext so the store can be
// inspected without the key during support work.
func sensitiveFields(o *models.Observation) []*string {
	p := &o.Person
	return []*string{
		&o.Notes, &o.AdditionalNotes,
		&p.FirstName, &p.MiddleName, &p.LastName,
		&p.Phone, &p.Email,
		&p.Address, &p.City, &p.State, &p.Zip,
		&p.Tattoos,
	}
}

// EncryptObservation encrypts the sensitive fields of o in place.
func (c *Cipher) EncryptObservation(o *models.Observation) error {
	for _, f := range sensitiveFields(o) {
		enc, err := c.EncryptString(*f)
		if err != nil {
			return err
		}
		*f = enc
	}
	return nil
}

// DecryptObservation decrypts the sensitive fields of o in place.
func (c *Cipher) DecryptObservation(o *models.Observation) error {
	for _, f := range sensitiveFields(o) {
		dec, err := c.DecryptString(*f)
		if err != nil {
			return err
		}
		*f = dec
	}
	return nil
}
