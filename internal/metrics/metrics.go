package metrics

const Namespace = "producthub"
