package tasks

import (
	"strconv"

	"github.com/Vovarama1992/toefl_trainer/internal/domain"
)

// TaskID: тип задания TOEFL Speaking. 1: standalone текст, 2..4: структурные промпты.
type TaskID int

const (
	Standalone TaskID = 1
	Task2      TaskID = 2
	Task3      TaskID = 3
	Task4      TaskID = 4
)

type Field string

const (
	FieldReading   Field = "reading"
	FieldQuestion  Field = "question"
	FieldNotes     Field = "notes"
	FieldTopic     Field = "topic"
	FieldAudioFile Field = "audio_file"
)

// Kind describes the field set of one structured task.
type Kind struct {
	Task        TaskID
	Fields      []Field
	Summary     Field
	Title       string
	Description string
}

var kinds = map[TaskID]Kind{
	Task2: {
		Task:        Task2,
		Fields:      []Field{FieldReading, FieldAudioFile, FieldNotes},
		Summary:     FieldReading,
		Title:       "Campus Announcement (Task 2)",
		Description: "In this task, you read a campus announcement and listened to students discussing it. You needed to explain the students' opinion and their reasons.",
	},
	Task3: {
		Task:        Task3,
		Fields:      []Field{FieldReading, FieldQuestion, FieldAudioFile, FieldNotes},
		Summary:     FieldReading,
		Title:       "Academic Concept (Task 3)",
		Description: "In this task, you read an academic article and listened to a lecture. You needed to explain how the lecture examples illustrate the concept from the reading.",
	},
	Task4: {
		Task:        Task4,
		Fields:      []Field{FieldQuestion, FieldAudioFile, FieldNotes, FieldTopic},
		Summary:     FieldNotes,
		Title:       "Lecture Summary (Task 4)",
		Description: "In this task, you listened to an academic lecture. You needed to summarize the main points presented.",
	},
}

// Structured lists the task ids backed by a prompt collection, in order.
func Structured() []TaskID {
	return []TaskID{Task2, Task3, Task4}
}

func Parse(raw string) (TaskID, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalid("Invalid task number")
	}
	return Validate(TaskID(n))
}

func Validate(t TaskID) (TaskID, error) {
	if _, ok := kinds[t]; !ok {
		return 0, domain.Invalid("Invalid task number")
	}
	return t, nil
}

func KindOf(t TaskID) (Kind, bool) {
	k, ok := kinds[t]
	return k, ok
}

func (k Kind) Allows(f Field) bool {
	for _, x := range k.Fields {
		if x == f {
			return true
		}
	}
	return false
}

func (t TaskID) String() string {
	return strconv.Itoa(int(t))
}
