package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/weekplanner/core/internal/domain/dates"
	"github.com/weekplanner/core/internal/domain/entities"
)

// First-run sample data. Scheduled entries are placed on the current
// week so a fresh install opens on a populated grid instead of a week
// in the past.

// SeedTasks returns the first-run sample tasks.
func SeedTasks(userID string) []entities.Task {
	now := time.Now()
	monday, _ := dates.WeekRange(now)
	at := func(dayOffset, hour int) *time.Time {
		t := monday.AddDate(0, 0, dayOffset).Add(time.Duration(hour) * time.Hour)
		return &t
	}

	return []entities.Task{
		{
			ID:          uuid.NewString(),
			Title:       "Reunión de equipo",
			Description: "Reunión semanal de planificación",
			StartTime:   at(0, 9),
			Category:    entities.CategoryWork,
			Priority:    entities.PriorityHigh,
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Ejercicio matutino",
			Description: "Rutina de ejercicios en el gimnasio",
			StartTime:   at(0, 7),
			Category:    entities.CategoryHealth,
			Priority:    entities.PriorityMedium,
			Completed:   true,
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Estudiar Go",
			Description: "Revisar conceptos avanzados del lenguaje",
			StartTime:   at(1, 19),
			Category:    entities.CategoryEducation,
			Priority:    entities.PriorityMedium,
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Leer libro de productividad",
			Description: "Terminar de leer 'Atomic Habits'",
			Category:    entities.CategoryPersonal,
			Priority:    entities.PriorityLow,
			IsBacklog:   true,
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Revisar código del proyecto",
			Description: "Code review pendiente del último sprint",
			Category:    entities.CategoryWork,
			Priority:    entities.PriorityHigh,
			IsBacklog:   true,
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Planificar vacaciones",
			Description: "Investigar destinos y hacer reservas",
			Category:    entities.CategoryPersonal,
			Priority:    entities.PriorityMedium,
			IsBacklog:   true,
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// SeedEvents returns the first-run sample events.
func SeedEvents(userID string) []entities.Event {
	now := time.Now()
	monday, _ := dates.WeekRange(now)
	at := func(dayOffset, hour int) time.Time {
		return monday.AddDate(0, 0, dayOffset).Add(time.Duration(hour) * time.Hour)
	}

	return []entities.Event{
		{
			ID:          uuid.NewString(),
			Title:       "Conferencia de tecnología",
			Description: "Conferencia anual sobre tecnologías modernas",
			StartTime:   at(2, 9),
			EndTime:     at(2, 17),
			Location:    "Centro de Convenciones",
			Attendees:   []string{"juan@example.com", "maria@example.com"},
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Cena familiar",
			Description: "Cena de cumpleaños de mamá",
			StartTime:   at(3, 19),
			EndTime:     at(3, 22),
			Location:    "Restaurante El Jardín",
			Attendees:   []string{"papa@example.com", "hermana@example.com"},
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// SeedFrequentTasks returns the default template registry.
func SeedFrequentTasks() []entities.FrequentTask {
	now := time.Now()
	template := func(title, description string, category entities.Category, priority entities.Priority, minutes int) entities.FrequentTask {
		return entities.FrequentTask{
			ID:                uuid.NewString(),
			Title:             title,
			Description:       description,
			Category:          category,
			Priority:          priority,
			EstimatedDuration: minutes,
			LastUsed:          now,
			CreatedAt:         now,
		}
	}

	return []entities.FrequentTask{
		template("Ir al supermercado", "Comprar comestibles y productos básicos", entities.CategoryPersonal, entities.PriorityMedium, 60),
		template("Ir al lavadero", "Llevar ropa para lavar", entities.CategoryPersonal, entities.PriorityLow, 30),
		template("Ejercicio rutinario", "Sesión de ejercicio diario", entities.CategoryHealth, entities.PriorityMedium, 45),
		template("Reunión de equipo", "Reunión semanal del equipo", entities.CategoryWork, entities.PriorityHigh, 60),
		template("Llamar a la familia", "Llamada familiar semanal", entities.CategorySocial, entities.PriorityMedium, 30),
	}
}
