package main

import (
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mediassist/mediassist-api/internal/config"
	"github.com/mediassist/mediassist-api/internal/models"
	"github.com/mediassist/mediassist-api/internal/utils"
)

type specialtySeed struct {
	name, description, icon string
}

type symptomSeed struct {
	name, description string
	severity          int
}

type diseaseSeed struct {
	name, description string
	precautions       []string
	specialty         string
	// symptom name -> weight
	symptoms map[string]float64
}

type doctorSeed struct {
	email, firstName, lastName, specialty string
	phone, address, city                  string
	latitude, longitude                   float64
	qualifications                        string
	experience                            int
	rating                                float64
	reviewCount                           int
	consultationFee                       float64
	availableFrom, availableTo            string
	workingDays                           []string
}

var specialtySeeds = []specialtySeed{
	{"General Physician", "Primary care and general health consultations", "stethoscope"},
	{"Cardiologist", "Heart and cardiovascular system specialist", "heart"},
	{"Dermatologist", "Skin, hair, and nail specialist", "user"},
	{"Neurologist", "Brain and nervous system specialist", "brain"},
	{"Orthopedic", "Bones, joints, and muscles specialist", "bone"},
	{"ENT Specialist", "Ear, nose, and throat specialist", "ear"},
	{"Gastroenterologist", "Digestive system specialist", "stomach"},
	{"Psychiatrist", "Mental health specialist", "brain"},
	{"Pulmonologist", "Respiratory system specialist", "lungs"},
	{"Ophthalmologist", "Eye specialist", "eye"},
}

var symptomSeeds = []symptomSeed{
	{"Fever", "Elevated body temperature", 3},
	{"Headache", "Pain in the head region", 2},
	{"Cough", "Sudden expulsion of air from lungs", 2},
	{"Fatigue", "Extreme tiredness", 2},
	{"Nausea", "Feeling of sickness", 2},
	{"Vomiting", "Forceful emptying of stomach", 3},
	{"Diarrhea", "Loose watery stools", 3},
	{"Chest Pain", "Pain in chest area", 4},
	{"Shortness of Breath", "Difficulty breathing", 4},
	{"Dizziness", "Feeling lightheaded", 2},
	{"Joint Pain", "Pain in joints", 3},
	{"Muscle Pain", "Pain in muscles", 2},
	{"Sore Throat", "Pain in throat", 2},
	{"Runny Nose", "Nasal discharge", 1},
	{"Skin Rash", "Skin irritation or discoloration", 2},
	{"Abdominal Pain", "Pain in stomach area", 3},
	{"Loss of Appetite", "Reduced desire to eat", 2},
	{"Weight Loss", "Unintentional weight reduction", 3},
	{"Blurred Vision", "Unclear vision", 3},
	{"Anxiety", "Feeling of worry or fear", 3},
	{"Depression", "Persistent sadness", 4},
	{"Insomnia", "Difficulty sleeping", 3},
	{"Back Pain", "Pain in back region", 3},
	{"Swelling", "Abnormal enlargement", 2},
	{"Itching", "Skin irritation causing urge to scratch", 2},
}

var diseaseSeeds = []diseaseSeed{
	{
		name:        "Common Cold",
		description: "A viral infection of the upper respiratory tract",
		precautions: []string{"Rest well", "Stay hydrated", "Use over-the-counter cold remedies", "Avoid close contact with others"},
		specialty:   "General Physician",
		symptoms:    map[string]float64{"Cough": 1, "Runny Nose": 1.5, "Sore Throat": 1, "Headache": 0.5},
	},
	{
		name:        "Influenza (Flu)",
		description: "A contagious respiratory illness caused by influenza viruses",
		precautions: []string{"Get plenty of rest", "Drink fluids", "Take antiviral medications if prescribed", "Stay home to prevent spreading"},
		specialty:   "General Physician",
		symptoms:    map[string]float64{"Fever": 1.5, "Cough": 1, "Fatigue": 1, "Muscle Pain": 1, "Headache": 1},
	},
	{
		name:        "Migraine",
		description: "A type of headache with severe throbbing pain",
		precautions: []string{"Avoid triggers", "Rest in a dark quiet room", "Apply cold compress", "Take prescribed medications"},
		specialty:   "Neurologist",
		symptoms:    map[string]float64{"Headache": 2, "Nausea": 1, "Blurred Vision": 1, "Dizziness": 0.5},
	},
	{
		name:        "Hypertension",
		description: "High blood pressure condition",
		precautions: []string{"Reduce salt intake", "Exercise regularly", "Maintain healthy weight", "Take medications as prescribed"},
		specialty:   "Cardiologist",
		symptoms:    map[string]float64{"Headache": 1, "Dizziness": 1, "Blurred Vision": 1, "Chest Pain": 1.5},
	},
	{
		name:        "Gastritis",
		description: "Inflammation of the stomach lining",
		precautions: []string{"Avoid spicy foods", "Eat smaller meals", "Avoid alcohol", "Take antacids if needed"},
		specialty:   "Gastroenterologist",
		symptoms:    map[string]float64{"Abdominal Pain": 2, "Nausea": 1, "Vomiting": 1, "Loss of Appetite": 1},
	},
	{
		name:        "Eczema",
		description: "Skin condition causing itchy, inflamed skin",
		precautions: []string{"Moisturize regularly", "Avoid harsh soaps", "Wear soft fabrics", "Use prescribed creams"},
		specialty:   "Dermatologist",
		symptoms:    map[string]float64{"Skin Rash": 2, "Itching": 2, "Swelling": 1},
	},
	{
		name:        "Asthma",
		description: "Chronic respiratory condition affecting airways",
		precautions: []string{"Avoid triggers", "Use inhalers as prescribed", "Monitor breathing", "Have an action plan"},
		specialty:   "Pulmonologist",
		symptoms:    map[string]float64{"Shortness of Breath": 2, "Cough": 1, "Chest Pain": 1},
	},
	{
		name:        "Anxiety Disorder",
		description: "Mental health condition with excessive worry",
		precautions: []string{"Practice relaxation techniques", "Exercise regularly", "Limit caffeine", "Seek therapy"},
		specialty:   "Psychiatrist",
		symptoms:    map[string]float64{"Anxiety": 2, "Insomnia": 1, "Fatigue": 1, "Dizziness": 0.5},
	},
	{
		name:        "Diabetes Type 2",
		description: "Metabolic disorder affecting blood sugar levels",
		precautions: []string{"Monitor blood sugar", "Follow diet plan", "Exercise regularly", "Take medications as prescribed"},
		specialty:   "General Physician",
		symptoms:    map[string]float64{"Fatigue": 1, "Weight Loss": 1.5, "Blurred Vision": 1, "Loss of Appetite": 1},
	},
	{
		name:        "Bronchitis",
		description: "Inflammation of the bronchial tubes",
		precautions: []string{"Rest well", "Stay hydrated", "Use humidifier", "Avoid smoking"},
		specialty:   "Pulmonologist",
		symptoms:    map[string]float64{"Cough": 2, "Fatigue": 1, "Shortness of Breath": 1, "Fever": 1},
	},
}

var doctorSeeds = []doctorSeed{
	{
		email: "dr.ahmed@mediassist.com", firstName: "Ahmed", lastName: "Khan",
		specialty: "General Physician", phone: "+92 321 1234567",
		address: "Medical Complex, GT Road", city: "Taxila",
		latitude: 33.7665, longitude: 72.8329,
		qualifications: "MBBS, FCPS", experience: 10,
		rating: 4.8, reviewCount: 156, consultationFee: 1500,
		availableFrom: "09:00", availableTo: "17:00",
		workingDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
	},
	{
		email: "dr.fatima@mediassist.com", firstName: "Fatima", lastName: "Ali",
		specialty: "Cardiologist", phone: "+92 333 9876543",
		address: "Heart Care Center, Main Boulevard", city: "Rawalpindi",
		latitude: 33.5651, longitude: 73.0169,
		qualifications: "MBBS, MRCP, FCPS Cardiology", experience: 15,
		rating: 4.9, reviewCount: 243, consultationFee: 2500,
		availableFrom: "10:00", availableTo: "18:00",
		workingDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Saturday"},
	},
	{
		email: "dr.hassan@mediassist.com", firstName: "Hassan", lastName: "Malik",
		specialty: "Dermatologist", phone: "+92 345 5556666",
		address: "Skin Care Clinic, University Road", city: "Taxila",
		latitude: 33.7445, longitude: 72.7867,
		qualifications: "MBBS, FCPS Dermatology", experience: 8,
		rating: 4.7, reviewCount: 98, consultationFee: 2000,
		availableFrom: "11:00", availableTo: "19:00",
		workingDays: []string{"Monday", "Wednesday", "Friday", "Saturday"},
	},
	{
		email: "dr.ayesha@mediassist.com", firstName: "Ayesha", lastName: "Siddiqui",
		specialty: "Neurologist", phone: "+92 300 7778888",
		address: "Neuro Care Hospital, Saddar", city: "Rawalpindi",
		latitude: 33.5973, longitude: 73.0479,
		qualifications: "MBBS, FCPS Neurology, Fellowship UK", experience: 12,
		rating: 4.9, reviewCount: 187, consultationFee: 3000,
		availableFrom: "09:00", availableTo: "15:00",
		workingDays: []string{"Monday", "Tuesday", "Thursday", "Friday"},
	},
	{
		email: "dr.usman@mediassist.com", firstName: "Usman", lastName: "Tariq",
		specialty: "Gastroenterologist", phone: "+92 311 2223333",
		address: "Digestive Health Center, Wah Cantt", city: "Wah Cantt",
		latitude: 33.7780, longitude: 72.7511,
		qualifications: "MBBS, FCPS Gastroenterology", experience: 9,
		rating: 4.6, reviewCount: 112, consultationFee: 2000,
		availableFrom: "10:00", availableTo: "18:00",
		workingDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	},
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	specialtyByName := seedSpecialties(db)
	symptomByName := seedSymptoms(db)
	seedDiseases(db, specialtyByName, symptomByName)
	seedDoctors(db, specialtyByName)
	seedSamplePatient(db)

	log.Info("database seeding completed")
}

func seedSpecialties(db *gorm.DB) map[string]string {
	byName := make(map[string]string, len(specialtySeeds))
	for _, s := range specialtySeeds {
		specialty := models.Specialty{Name: s.name, Description: s.description, IconName: s.icon}
		if err := db.Where("name = ?", s.name).FirstOrCreate(&specialty).Error; err != nil {
			log.Fatalf("seeding specialty %q: %v", s.name, err)
		}
		byName[s.name] = specialty.ID
	}
	log.Infof("seeded %d specialties", len(specialtySeeds))
	return byName
}

func seedSymptoms(db *gorm.DB) map[string]string {
	byName := make(map[string]string, len(symptomSeeds))
	for _, s := range symptomSeeds {
		symptom := models.Symptom{Name: s.name, Description: s.description, Severity: s.severity}
		if err := db.Where("name = ?", s.name).FirstOrCreate(&symptom).Error; err != nil {
			log.Fatalf("seeding symptom %q: %v", s.name, err)
		}
		byName[s.name] = symptom.ID
	}
	log.Infof("seeded %d symptoms", len(symptomSeeds))
	return byName
}

func seedDiseases(db *gorm.DB, specialtyByName, symptomByName map[string]string) {
	for _, d := range diseaseSeeds {
		specialtyID, ok := specialtyByName[d.specialty]
		if !ok {
			log.Fatalf("disease %q references unknown specialty %q", d.name, d.specialty)
		}
		disease := models.Disease{
			Name:                   d.name,
			Description:            d.description,
			Precautions:            pq.StringArray(d.precautions),
			RecommendedSpecialtyID: &specialtyID,
		}
		if err := db.Where("name = ?", d.name).FirstOrCreate(&disease).Error; err != nil {
			log.Fatalf("seeding disease %q: %v", d.name, err)
		}

		for symptomName, weight := range d.symptoms {
			symptomID, ok := symptomByName[symptomName]
			if !ok {
				log.Fatalf("disease %q references unknown symptom %q", d.name, symptomName)
			}
			link := models.DiseaseSymptom{DiseaseID: disease.ID, SymptomID: symptomID, Weight: weight}
			err := db.Where("disease_id = ? AND symptom_id = ?", disease.ID, symptomID).
				FirstOrCreate(&link).Error
			if err != nil {
				log.Fatalf("linking %q to %q: %v", d.name, symptomName, err)
			}
		}
	}
	log.Infof("seeded %d diseases", len(diseaseSeeds))
}

func seedDoctors(db *gorm.DB, specialtyByName map[string]string) {
	hashed, err := utils.HashPassword("password123")
	if err != nil {
		log.Fatalf("hashing seed password: %v", err)
	}

	for _, d := range doctorSeeds {
		specialtyID, ok := specialtyByName[d.specialty]
		if !ok {
			log.Fatalf("doctor %q references unknown specialty %q", d.email, d.specialty)
		}
		user := models.User{
			Email:    d.email,
			Password: hashed,
			Role:     models.RoleDoctor,
			Doctor: &models.Doctor{
				FirstName:       d.firstName,
				LastName:        d.lastName,
				SpecialtyID:     specialtyID,
				Phone:           d.phone,
				Address:         d.address,
				City:            d.city,
				Latitude:        d.latitude,
				Longitude:       d.longitude,
				Qualifications:  d.qualifications,
				Experience:      d.experience,
				Rating:          d.rating,
				ReviewCount:     d.reviewCount,
				ConsultationFee: d.consultationFee,
				AvailableFrom:   d.availableFrom,
				AvailableTo:     d.availableTo,
				WorkingDays:     pq.StringArray(d.workingDays),
				IsActive:        true,
				IsVerified:      true,
			},
		}
		if err := db.Where("email = ?", d.email).FirstOrCreate(&user).Error; err != nil {
			log.Fatalf("seeding doctor %q: %v", d.email, err)
		}
	}
	log.Infof("seeded %d doctors", len(doctorSeeds))
}

func seedSamplePatient(db *gorm.DB) {
	hashed, err := utils.HashPassword("password123")
	if err != nil {
		log.Fatalf("hashing seed password: %v", err)
	}

	user := models.User{
		Email:    "patient@example.com",
		Password: hashed,
		Role:     models.RolePatient,
		Patient: &models.Patient{
			FirstName: "Ali",
			LastName:  "Raza",
			Phone:     "+92 300 1112222",
			City:      "Taxila",
			Gender:    "MALE",
		},
	}
	if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("seeding sample patient: %v", err)
	}
	log.Info("seeded sample patient")
}
