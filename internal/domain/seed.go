package domain

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/visus/internal/models"
	"github.com/Vovarama1992/visus/internal/ports"
)

// Seed fills empty tables with demo content. Non-empty tables are left
// alone, so running it on every start is safe.
func Seed(
	ctx context.Context,
	doctors ports.DoctorRepository,
	services ports.ServiceRepository,
	reviews ports.ReviewRepository,
) error {
	n, err := doctors.CountDoctors(ctx)
	if err != nil {
		return fmt.Errorf("count doctors: %w", err)
	}
	if n == 0 {
		for _, d := range seedDoctors {
			if _, err := doctors.InsertDoctor(ctx, &d); err != nil {
				return fmt.Errorf("seed doctor %q: %w", d.Name, err)
			}
		}
	}

	n, err = services.CountServices(ctx)
	if err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if n == 0 {
		for _, it := range seedServices {
			if _, err := services.InsertService(ctx, &it); err != nil {
				return fmt.Errorf("seed service %q: %w", it.Slug, err)
			}
		}
	}

	n, err = reviews.CountReviews(ctx)
	if err != nil {
		return fmt.Errorf("count reviews: %w", err)
	}
	if n == 0 {
		for _, r := range seedReviews {
			if _, err := reviews.InsertReview(ctx, &r); err != nil {
				return fmt.Errorf("seed review %q: %w", r.PatientName, err)
			}
		}
	}
	return nil
}

var seedDoctors = []models.Doctor{
	{
		Name:            "Айжан Ермекова",
		Role:            "Врач-офтальмолог",
		ExperienceYears: 12,
		DescriptionRu:   "Комплексная диагностика, подбор коррекции, наблюдение взрослых пациентов.",
		DescriptionKk:   "Кешенді диагностика, түзетуді таңдау, ересек пациенттерді бақылау.",
		PhotoURL:        "doctors/doctor1.jpg",
	},
	{
		Name:            "Динара Сапарова",
		Role:            "Детский офтальмолог",
		ExperienceYears: 8,
		DescriptionRu:   "Наблюдение детей, контроль прогрессирования близорукости, мягкие линзы.",
		DescriptionKk:   "Балаларды бақылау, миопияның үдеуін бақылау, жұмсақ линзалар.",
		PhotoURL:        "doctors/doctor2.jpg",
	},
	{
		Name:            "Алина Тлеуберді",
		Role:            "Администратор центра",
		ExperienceYears: 5,
		DescriptionRu:   "Организует запись, отвечает на вопросы по услугам и времени приёма.",
		DescriptionKk:   "Жазылуды ұйымдастырады, қызметтер және қабылдау уақыты туралы сұрақтарға жауап береді.",
		PhotoURL:        "doctors/admin.jpg",
	},
}

var seedServices = []models.ServiceItem{
	{
		Slug:               "diagnostics",
		TitleRu:            "Комплексная диагностика зрения",
		TitleKk:            "Кешенді көру диагностикасы",
		ShortDescriptionRu: "Компьютерные измерения, проверка остроты зрения, осмотр глаз.",
		ShortDescriptionKk: "Компьютерлік өлшеулер, көру өткірлігін тексеру, көзді қарау.",
		IsActive:           true,
	},
	{
		Slug:               "kids",
		TitleRu:            "Детская офтальмология",
		TitleKk:            "Балалар офтальмологиясы",
		ShortDescriptionRu: "Наблюдение детей, подбор очков и линз.",
		ShortDescriptionKk: "Балаларды бақылау, көзілдірік пен линзаларды таңдау.",
		IsActive:           true,
	},
}

var seedReviews = []models.Review{
	{
		PatientName: "Пациент №1",
		Rating:      5,
		TextRu:      "Сделали диагностику за 40 минут",
		TextKk:      "40 минутта диагностика жасалды",
		PosterURL:   "reviews/review1.jpg",
	},
}
