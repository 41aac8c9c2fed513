// Package docs holds the registered OpenAPI document of the api
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
	"openapi": "3.0.3",
	"info": {
		"title": "{{.Title}}",
		"description": "{{escape .Description}}",
		"version": "{{.Version}}"
	},
	"servers": [
		{
			"url": "/api/v1"
		}
	],
	"paths": {
		"/mapathon/summary": {
			"post": {
				"tags": [
					"Mapathon"
				],
				"summary": "Mapathon summary",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/mapathon/detail": {
			"post": {
				"tags": [
					"Mapathon"
				],
				"summary": "Mapathon detail per contributor",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/mapathon/changesets": {
			"post": {
				"tags": [
					"Mapathon"
				],
				"summary": "Changesets of a mapathon window",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/data-quality/hashtag-reports": {
			"post": {
				"tags": [
					"Data quality"
				],
				"summary": "Data quality by hashtag",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							},
							"text/csv": {
								"schema": {
									"type": "string"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/data-quality/hashtag-reports/summary": {
			"post": {
				"tags": [
					"Data quality"
				],
				"summary": "Data quality hashtag summary",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/data-quality/user-reports": {
			"post": {
				"tags": [
					"Data quality"
				],
				"summary": "Data quality by user",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							},
							"text/csv": {
								"schema": {
									"type": "string"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/data-quality/project-reports": {
			"post": {
				"tags": [
					"Data quality"
				],
				"summary": "Data quality by tasking manager project",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							},
							"text/csv": {
								"schema": {
									"type": "string"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/organization/hashtags": {
			"post": {
				"tags": [
					"Organization"
				],
				"summary": "Organization hashtag statistics",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							},
							"text/csv": {
								"schema": {
									"type": "string"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/osm-users/ids": {
			"post": {
				"tags": [
					"Users"
				],
				"summary": "Osm ids of usernames",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/osm-users/statistics": {
			"post": {
				"tags": [
					"Users"
				],
				"summary": "User statistics",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/tasking-manager/validators": {
			"post": {
				"tags": [
					"Tasking manager"
				],
				"summary": "Validator statistics",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							},
							"text/csv": {
								"schema": {
									"type": "string"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/tasking-manager/teams": {
			"get": {
				"tags": [
					"Tasking manager"
				],
				"summary": "Teams",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				}
			}
		},
		"/tasking-manager/teams/members": {
			"get": {
				"tags": [
					"Tasking manager"
				],
				"summary": "Team members",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				},
				"parameters": [
					{
						"name": "team_id",
						"in": "query",
						"required": false,
						"schema": {
							"type": "integer"
						}
					}
				]
			}
		},
		"/training/organisations": {
			"get": {
				"tags": [
					"Training"
				],
				"summary": "Training organisations",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				}
			}
		},
		"/training": {
			"post": {
				"tags": [
					"Training"
				],
				"summary": "Trainings",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				},
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/status/{target}": {
			"get": {
				"tags": [
					"Status"
				],
				"summary": "Data recency",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				},
				"parameters": [
					{
						"name": "target",
						"in": "path",
						"required": true,
						"schema": {
							"type": "string",
							"enum": [
								"changesets",
								"validation"
							]
						}
					}
				]
			}
		},
		"/meta/health": {
			"get": {
				"tags": [
					"Meta"
				],
				"summary": "Liveness and uptime",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				}
			}
		},
		"/meta/ready": {
			"get": {
				"tags": [
					"Meta"
				],
				"summary": "Readiness with a ping per source",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				}
			}
		},
		"/meta/version": {
			"get": {
				"tags": [
					"Meta"
				],
				"summary": "Build and version info",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {
									"type": "object"
								}
							}
						}
					}
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "Galaxy API",
	Description:      "Read only reporting over OpenStreetMap edits, validation results and tasking manager data",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
