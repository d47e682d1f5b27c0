package validators

import "go.mongodb.org/mongo-driver/bson"

var TicketValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"school_code",
			"sender_role",
			"subject",
			"detail",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"school_code": bson.M{
				"bsonType": "string",
				"pattern":  `^[A-Z]{3}\d{4}$`,
			},

			"sender_role": bson.M{
				"bsonType": "string",
				"enum": []string{
					"ict_coordinator",
					"delima_admin",
				},
			},

			"subject": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 150,
			},

			"detail": bson.M{
				"bsonType":  "string",
				"minLength": 10,
				"maxLength": 2000,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"open",
					"in_progress",
					"resolved",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
