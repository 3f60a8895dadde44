package schemas

import "time"

type GTMFramework struct {
	ID          string     `json:"id" bson:"id" yaml:"id"`
	Name        string     `json:"name" bson:"name" yaml:"name"`
	Description string     `json:"description" bson:"description" yaml:"description"`
	Phases      []Document `json:"phases" bson:"phases" yaml:"phases"`
	SuccessRate float64    `json:"success_rate" bson:"success_rate" yaml:"success_rate"`
	UseCases    []string   `json:"use_cases" bson:"use_cases" yaml:"use_cases"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" yaml:"-"`
}
