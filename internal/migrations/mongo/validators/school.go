package validators

import "go.mongodb.org/mongo-driver/bson"

var contactSchema = bson.M{
	"bsonType":             "object",
	"additionalProperties": true,
	"properties": bson.M{
		"name": bson.M{
			"bsonType":  "string",
			"maxLength": 100,
		},
		"phone": bson.M{
			"bsonType":  "string",
			"maxLength": 20,
		},
		"email": bson.M{
			"bsonType":  "string",
			"maxLength": 150,
		},
		"telegram_id": bson.M{
			"bsonType":  "string",
			"maxLength": 64,
		},
	},
}

var SchoolValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"school_code",
			"school_name",
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

			"school_name": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 150,
			},

			"school_type": bson.M{
				"bsonType":  "string",
				"maxLength": 40,
			},

			"ict_coordinator": contactSchema,
			"delima_admin":    contactSchema,

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
