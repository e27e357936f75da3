package utils

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

var commonFirstNames = []string{
	"Ana", "Marco", "Lucía", "Javier", "Carla", "Diego", "María", "Pablo",
	"Sofía", "Álvaro", "Elena", "Sergio", "Nuria", "Raúl", "Irene", "Hugo",
	"Laura", "Adrián", "Paula", "Iván",
}

var commonLastNames = []string{
	"García", "Martínez", "López", "Sánchez", "Pérez", "Gómez", "Ruiz",
	"Díaz", "Moreno", "Muñoz", "Álvarez", "Romero", "Navarro", "Torres",
	"Vega", "Ortega", "Delgado", "Castro", "Serrano", "Iglesias",
}

func GenerateRandomSpanishName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var courierStatuses = []domain.CourierStatus{
	domain.CourierActive,
	domain.CourierOnRoute,
	domain.CourierInactive,
}

func GenerateRandomCourier(franchiseID string, emailDomain string) *domain.Courier {
	fullName := GenerateRandomSpanishName()

	return &domain.Courier{
		ID:            uuid.NewString(),
		FranchiseID:   franchiseID,
		FullName:      fullName,
		Email:         fmt.Sprintf("rider%04d@%s", rand.Intn(10000), emailDomain),
		Status:        courierStatuses[rand.Intn(len(courierStatuses))],
		ContractHours: int32([]int{20, 25, 30, 40}[rand.Intn(4)]),
	}
}

var plateLetters = []rune("BCDFGHJKLMNPRSTVWXYZ")

// GenerateRandomPlate follows the Spanish format, four digits then three
// consonants.
func GenerateRandomPlate() string {
	letters := make([]rune, 3)
	for i := range letters {
		letters[i] = plateLetters[rand.Intn(len(plateLetters))]
	}
	return fmt.Sprintf("%04d %s", rand.Intn(10000), string(letters))
}

var vehicleModels = []string{
	"Honda PCX 125", "Yamaha NMAX", "Piaggio Liberty", "Kymco Agility",
	"SYM Symphony", "Vespa Primavera",
}

func GenerateRandomVehicle(franchiseID string) *domain.Vehicle {
	return &domain.Vehicle{
		ID:          uuid.NewString(),
		FranchiseID: franchiseID,
		Plate:       GenerateRandomPlate(),
		Model:       vehicleModels[rand.Intn(len(vehicleModels))],
		IsActive:    rand.Intn(10) > 0,
	}
}
