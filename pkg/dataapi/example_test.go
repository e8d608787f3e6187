package dataapi_test

import (
	"context"
	"fmt"
	"log"

	"github.com/nimburion/dataapi/pkg/dataapi"
)

type Task struct {
	ID          string `json:"_id,omitempty"`
	Status      string `json:"status"`
	CompletedAt string `json:"completedAt,omitempty"`
}

func ExampleClient_FindOne() {
	client := dataapi.New[Task](dataapi.Config{
		BaseURL:    "https://data.example.com/app/tasks/endpoint/data/v1",
		APIKey:     "secret",
		DataSource: "Cluster0",
		Database:   "production",
		Collection: "tasks",
	}, nil)

	task, err := client.FindOne(context.Background(), dataapi.Filter{
		"status": dataapi.Eq("complete"),
	}, nil)
	if err != nil {
		log.Fatal(err)
	}
	if task != nil {
		fmt.Println(task.Status)
	}
}

func ExampleClient_Find() {
	client := dataapi.New[Task](dataapi.Config{
		BaseURL:    "https://data.example.com/app/tasks/endpoint/data/v1",
		APIKey:     "secret",
		DataSource: "Cluster0",
		Database:   "production",
		Collection: "tasks",
	}, nil)

	recent, err := client.Find(context.Background(), nil, dataapi.FindOptions{
		Sort:  dataapi.Sort{"completedAt": dataapi.Descending},
		Limit: 10,
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, task := range recent {
		fmt.Println(task.ID)
	}
}
